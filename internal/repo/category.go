package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// CategoryRepo defines the persistence operations for Categories.
type CategoryRepo interface {
	// Create inserts a new category and returns the persisted record.
	Create(ctx context.Context, cat domain.Category) (domain.Category, error)

	// GetByID retrieves a single category by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if no such category exists under that trip.
	GetByID(ctx context.Context, tripID, catID uuid.UUID) (domain.Category, error)

	// ListByTripID returns all categories for a trip ordered by created_at ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Category, error)

	// Update overwrites the mutable fields of a category and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, cat domain.Category) (domain.Category, error)

	// Delete removes a category by ID, scoped to the given trip. Pins that
	// referenced it keep existing with a NULL category (FK SET NULL).
	Delete(ctx context.Context, tripID, catID uuid.UUID) error
}

// pgCategoryRepo is the Postgres implementation of CategoryRepo.
type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

const categoryColumns = `id, trip_id, name, color, icon, created_at`

// Create inserts a new category row and returns the full persisted record.
func (r *pgCategoryRepo) Create(ctx context.Context, cat domain.Category) (domain.Category, error) {
	const q = `
		INSERT INTO categories (trip_id, name, color, icon)
		VALUES (@trip_id, @name, @color, @icon)
		RETURNING ` + categoryColumns

	args := pgx.NamedArgs{
		"trip_id": cat.TripID,
		"name":    cat.Name,
		"color":   cat.Color,
		"icon":    cat.Icon,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a category by primary key, scoped to tripID.
func (r *pgCategoryRepo) GetByID(ctx context.Context, tripID, catID uuid.UUID) (domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": catID, "trip_id": tripID})
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all categories for a trip, oldest first.
func (r *pgCategoryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE trip_id = @trip_id ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CategoryRepo.ListByTripID: scan: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.ListByTripID: rows: %w", err)
	}

	return cats, nil
}

// Update overwrites the mutable fields of a category and returns the updated record.
func (r *pgCategoryRepo) Update(ctx context.Context, cat domain.Category) (domain.Category, error) {
	const q = `
		UPDATE categories
		SET name  = @name,
		    color = @color,
		    icon  = @icon
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + categoryColumns

	args := pgx.NamedArgs{
		"id":      cat.ID,
		"trip_id": cat.TripID,
		"name":    cat.Name,
		"color":   cat.Color,
		"icon":    cat.Icon,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a category by primary key, scoped to tripID.
func (r *pgCategoryRepo) Delete(ctx context.Context, tripID, catID uuid.UUID) error {
	const q = `DELETE FROM categories WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": catID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CategoryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanCategory maps a single database row into a domain.Category.
func scanCategory(s scanner) (domain.Category, error) {
	var (
		c      domain.Category
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.TripID = uuid.UUID(tripID.Bytes)

	return c, nil
}
