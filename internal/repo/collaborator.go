package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// CollaboratorRepo defines the persistence operations for Collaborators.
type CollaboratorRepo interface {
	// Create inserts a collaborator row. Returns domain.ErrConflict if the
	// user already collaborates on the trip (unique trip_id+user_id).
	Create(ctx context.Context, c domain.Collaborator) (domain.Collaborator, error)

	// GetByID retrieves a collaborator row by ID, scoped to the given trip.
	GetByID(ctx context.Context, tripID, collabID uuid.UUID) (domain.Collaborator, error)

	// GetByTripAndUser returns the collaborator row for a user on a trip,
	// or domain.ErrNotFound when the user does not collaborate on it.
	GetByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (domain.Collaborator, error)

	// ListByTripID returns all collaborators on a trip with their emails,
	// ordered by created_at ascending (creator's owner row first).
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Collaborator, error)

	// UpdateRole changes a collaborator's role and returns the updated row.
	UpdateRole(ctx context.Context, tripID, collabID uuid.UUID, role domain.Role) (domain.Collaborator, error)

	// Delete removes a collaborator row by ID, scoped to the given trip.
	Delete(ctx context.Context, tripID, collabID uuid.UUID) error
}

// pgCollaboratorRepo is the Postgres implementation of CollaboratorRepo.
type pgCollaboratorRepo struct {
	db db
}

// NewCollaboratorRepo constructs a CollaboratorRepo backed by the provided db connection.
func NewCollaboratorRepo(db db) CollaboratorRepo {
	return &pgCollaboratorRepo{db: db}
}

const collaboratorColumns = `id, trip_id, user_id, role, created_at`

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

// Create inserts a collaborator row and returns the full persisted record.
func (r *pgCollaboratorRepo) Create(ctx context.Context, c domain.Collaborator) (domain.Collaborator, error) {
	const q = `
		INSERT INTO collaborators (trip_id, user_id, role)
		VALUES (@trip_id, @user_id, @role)
		RETURNING ` + collaboratorColumns

	args := pgx.NamedArgs{
		"trip_id": c.TripID,
		"user_id": c.UserID,
		"role":    string(c.Role),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCollaborator(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a collaborator row by primary key, scoped to tripID.
func (r *pgCollaboratorRepo) GetByID(ctx context.Context, tripID, collabID uuid.UUID) (domain.Collaborator, error) {
	const q = `SELECT ` + collaboratorColumns + ` FROM collaborators WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": collabID, "trip_id": tripID})
	result, err := scanCollaborator(row)
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByTripAndUser returns the collaborator row keyed by the unique
// (trip_id, user_id) pair. This is the lookup the permission check runs on
// every trip-scoped request.
func (r *pgCollaboratorRepo) GetByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (domain.Collaborator, error) {
	const q = `SELECT ` + collaboratorColumns + ` FROM collaborators WHERE trip_id = @trip_id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	result, err := scanCollaborator(row)
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.GetByTripAndUser: %w", err)
	}
	return result, nil
}

// ListByTripID returns all collaborator rows on a trip joined with the
// collaborator's email for display in the share dialog.
func (r *pgCollaboratorRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Collaborator, error) {
	const q = `
		SELECT c.id, c.trip_id, c.user_id, c.role, c.created_at, u.email
		FROM collaborators c
		JOIN users u ON u.id = c.user_id
		WHERE c.trip_id = @trip_id
		ORDER BY c.created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.CollaboratorRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var collabs []domain.Collaborator
	for rows.Next() {
		var (
			c      domain.Collaborator
			id     pgtype.UUID
			tID    pgtype.UUID
			userID pgtype.UUID
			role   string
		)
		if err := rows.Scan(&id, &tID, &userID, &role, &c.CreatedAt, &c.Email); err != nil {
			return nil, fmt.Errorf("repo.CollaboratorRepo.ListByTripID: scan: %w", err)
		}
		c.ID = uuid.UUID(id.Bytes)
		c.TripID = uuid.UUID(tID.Bytes)
		c.UserID = uuid.UUID(userID.Bytes)
		c.Role = domain.Role(role)
		collabs = append(collabs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CollaboratorRepo.ListByTripID: rows: %w", err)
	}

	return collabs, nil
}

// UpdateRole changes a collaborator's role and returns the updated row.
func (r *pgCollaboratorRepo) UpdateRole(ctx context.Context, tripID, collabID uuid.UUID, role domain.Role) (domain.Collaborator, error) {
	const q = `
		UPDATE collaborators
		SET role = @role
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + collaboratorColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": collabID, "trip_id": tripID, "role": string(role)})
	result, err := scanCollaborator(row)
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.UpdateRole: %w", err)
	}
	return result, nil
}

// Delete removes a collaborator row by primary key, scoped to tripID.
func (r *pgCollaboratorRepo) Delete(ctx context.Context, tripID, collabID uuid.UUID) error {
	const q = `DELETE FROM collaborators WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": collabID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.CollaboratorRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CollaboratorRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanCollaborator maps a single database row into a domain.Collaborator.
func scanCollaborator(s scanner) (domain.Collaborator, error) {
	var (
		c      domain.Collaborator
		id     pgtype.UUID
		tripID pgtype.UUID
		userID pgtype.UUID
		role   string
	)

	err := s.Scan(&id, &tripID, &userID, &role, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Collaborator{}, domain.ErrNotFound
		}
		return domain.Collaborator{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.TripID = uuid.UUID(tripID.Bytes)
	c.UserID = uuid.UUID(userID.Bytes)
	c.Role = domain.Role(role)

	return c, nil
}
