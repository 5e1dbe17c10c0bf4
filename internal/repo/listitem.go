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

// ListItemRepo defines the persistence operations for trip checklist items.
type ListItemRepo interface {
	// Create inserts a new list item and returns the persisted record.
	Create(ctx context.Context, item domain.ListItem) (domain.ListItem, error)

	// GetByID retrieves a single list item by ID, scoped to the given trip.
	GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.ListItem, error)

	// ListByTripID returns list items for a trip, newest first. When
	// listType is non-empty only items of that type are returned.
	ListByTripID(ctx context.Context, tripID uuid.UUID, listType domain.ListType) ([]domain.ListItem, error)

	// Update overwrites the mutable fields of a list item and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, item domain.ListItem) (domain.ListItem, error)

	// Delete removes a list item by ID, scoped to the given trip.
	Delete(ctx context.Context, tripID, itemID uuid.UUID) error
}

// pgListItemRepo is the Postgres implementation of ListItemRepo.
type pgListItemRepo struct {
	db db
}

// NewListItemRepo constructs a ListItemRepo backed by the provided db connection.
func NewListItemRepo(db db) ListItemRepo {
	return &pgListItemRepo{db: db}
}

const listItemColumns = `id, trip_id, list_type, name, description, pin_id, completed, created_by, created_at, updated_at`

// Create inserts a new list item row and returns the full persisted record.
func (r *pgListItemRepo) Create(ctx context.Context, item domain.ListItem) (domain.ListItem, error) {
	const q = `
		INSERT INTO list_items (trip_id, list_type, name, description, pin_id, completed, created_by)
		VALUES (@trip_id, @list_type, @name, @description, @pin_id, @completed, @created_by)
		RETURNING ` + listItemColumns

	args := pgx.NamedArgs{
		"trip_id":     item.TripID,
		"list_type":   string(item.ListType),
		"name":        item.Name,
		"description": item.Description,
		"pin_id":      item.PinID,
		"completed":   item.Completed,
		"created_by":  item.CreatedBy,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanListItem(row)
	if err != nil {
		return domain.ListItem{}, fmt.Errorf("repo.ListItemRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a list item by primary key, scoped to tripID.
func (r *pgListItemRepo) GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.ListItem, error) {
	const q = `SELECT ` + listItemColumns + ` FROM list_items WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID})
	result, err := scanListItem(row)
	if err != nil {
		return domain.ListItem{}, fmt.Errorf("repo.ListItemRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns list items for a trip, optionally filtered by type.
func (r *pgListItemRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, listType domain.ListType) ([]domain.ListItem, error) {
	q := `SELECT ` + listItemColumns + ` FROM list_items WHERE trip_id = @trip_id`
	args := pgx.NamedArgs{"trip_id": tripID}
	if listType != "" {
		q += ` AND list_type = @list_type`
		args["list_type"] = string(listType)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ListItemRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var items []domain.ListItem
	for rows.Next() {
		it, err := scanListItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ListItemRepo.ListByTripID: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ListItemRepo.ListByTripID: rows: %w", err)
	}

	return items, nil
}

// Update overwrites the mutable fields of a list item and returns the updated record.
func (r *pgListItemRepo) Update(ctx context.Context, item domain.ListItem) (domain.ListItem, error) {
	const q = `
		UPDATE list_items
		SET list_type   = @list_type,
		    name        = @name,
		    description = @description,
		    pin_id      = @pin_id,
		    completed   = @completed,
		    updated_at  = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + listItemColumns

	args := pgx.NamedArgs{
		"id":          item.ID,
		"trip_id":     item.TripID,
		"list_type":   string(item.ListType),
		"name":        item.Name,
		"description": item.Description,
		"pin_id":      item.PinID,
		"completed":   item.Completed,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanListItem(row)
	if err != nil {
		return domain.ListItem{}, fmt.Errorf("repo.ListItemRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a list item by primary key, scoped to tripID.
func (r *pgListItemRepo) Delete(ctx context.Context, tripID, itemID uuid.UUID) error {
	const q = `DELETE FROM list_items WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ListItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ListItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanListItem maps a single database row into a domain.ListItem.
func scanListItem(s scanner) (domain.ListItem, error) {
	var (
		it       domain.ListItem
		id       pgtype.UUID
		tripID   pgtype.UUID
		pinID    pgtype.UUID
		listType string
		author   pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &listType, &it.Name, &it.Description, &pinID, &it.Completed, &author, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ListItem{}, domain.ErrNotFound
		}
		return domain.ListItem{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.TripID = uuid.UUID(tripID.Bytes)
	it.ListType = domain.ListType(listType)
	it.CreatedBy = uuid.UUID(author.Bytes)
	if pinID.Valid {
		pid := uuid.UUID(pinID.Bytes)
		it.PinID = &pid
	}

	return it, nil
}
