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

// PinRepo defines the persistence operations for Pins.
type PinRepo interface {
	// Create inserts a new pin and returns the persisted record.
	Create(ctx context.Context, pin domain.Pin) (domain.Pin, error)

	// GetByID retrieves a single pin by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if no such pin exists under that trip.
	GetByID(ctx context.Context, tripID, pinID uuid.UUID) (domain.Pin, error)

	// ListByTripID returns all pins for a trip ordered by created_at descending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Pin, error)

	// Update overwrites the mutable fields of a pin and returns the updated
	// record. Returns domain.ErrNotFound if it does not exist under that trip.
	Update(ctx context.Context, pin domain.Pin) (domain.Pin, error)

	// Delete removes a pin by ID, scoped to the given trip.
	// Returns domain.ErrNotFound if it does not exist under that trip.
	Delete(ctx context.Context, tripID, pinID uuid.UUID) error
}

// pgPinRepo is the Postgres implementation of PinRepo.
type pgPinRepo struct {
	db db
}

// NewPinRepo constructs a PinRepo backed by the provided db connection.
func NewPinRepo(db db) PinRepo {
	return &pgPinRepo{db: db}
}

const pinColumns = `id, trip_id, name, description, latitude, longitude,
	category_id, day, time, place_id, place_data, created_by, created_at, updated_at`

// Create inserts a new pin row and returns the full persisted record.
// place_data round-trips through jsonb; a nil map becomes NULL.
func (r *pgPinRepo) Create(ctx context.Context, pin domain.Pin) (domain.Pin, error) {
	const q = `
		INSERT INTO pins (trip_id, name, description, latitude, longitude,
			category_id, day, time, place_id, place_data, created_by)
		VALUES (@trip_id, @name, @description, @latitude, @longitude,
			@category_id, @day, @time, @place_id, @place_data, @created_by)
		RETURNING ` + pinColumns

	row := r.db.QueryRow(ctx, q, pinArgs(pin))
	result, err := scanPin(row)
	if err != nil {
		return domain.Pin{}, fmt.Errorf("repo.PinRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a pin by primary key, scoped to tripID.
func (r *pgPinRepo) GetByID(ctx context.Context, tripID, pinID uuid.UUID) (domain.Pin, error) {
	const q = `SELECT ` + pinColumns + ` FROM pins WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": pinID, "trip_id": tripID})
	result, err := scanPin(row)
	if err != nil {
		return domain.Pin{}, fmt.Errorf("repo.PinRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all pins for a trip, newest first, the order the
// map view renders them in.
func (r *pgPinRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Pin, error) {
	const q = `SELECT ` + pinColumns + ` FROM pins WHERE trip_id = @trip_id ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.PinRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var pins []domain.Pin
	for rows.Next() {
		p, err := scanPin(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PinRepo.ListByTripID: scan: %w", err)
		}
		pins = append(pins, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PinRepo.ListByTripID: rows: %w", err)
	}

	return pins, nil
}

// Update overwrites the mutable fields of a pin and returns the updated record.
func (r *pgPinRepo) Update(ctx context.Context, pin domain.Pin) (domain.Pin, error) {
	const q = `
		UPDATE pins
		SET name        = @name,
		    description = @description,
		    latitude    = @latitude,
		    longitude   = @longitude,
		    category_id = @category_id,
		    day         = @day,
		    time        = @time,
		    place_id    = @place_id,
		    place_data  = @place_data,
		    updated_at  = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + pinColumns

	args := pinArgs(pin)
	args["id"] = pin.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPin(row)
	if err != nil {
		return domain.Pin{}, fmt.Errorf("repo.PinRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a pin by primary key, scoped to tripID.
func (r *pgPinRepo) Delete(ctx context.Context, tripID, pinID uuid.UUID) error {
	const q = `DELETE FROM pins WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": pinID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.PinRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PinRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// pinArgs builds the NamedArgs shared by Create and Update.
func pinArgs(pin domain.Pin) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":     pin.TripID,
		"name":        pin.Name,
		"description": pin.Description,
		"latitude":    pin.Latitude,
		"longitude":   pin.Longitude,
		"category_id": pin.CategoryID,
		"day":         pin.Day,
		"time":        pin.Time,
		"place_id":    pin.PlaceID,
		"place_data":  pin.PlaceData,
		"created_by":  pin.CreatedBy,
	}
}

// scanPin maps a single database row into a domain.Pin.
func scanPin(s scanner) (domain.Pin, error) {
	var (
		p          domain.Pin
		id         pgtype.UUID
		tripID     pgtype.UUID
		categoryID pgtype.UUID
		day        pgtype.Int4
		createdBy  pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &p.Name, &p.Description, &p.Latitude, &p.Longitude,
		&categoryID, &day, &p.Time, &p.PlaceID, &p.PlaceData, &createdBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Pin{}, domain.ErrNotFound
		}
		return domain.Pin{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	p.CreatedBy = uuid.UUID(createdBy.Bytes)
	if categoryID.Valid {
		cid := uuid.UUID(categoryID.Bytes)
		p.CategoryID = &cid
	}
	if day.Valid {
		d := int(day.Int32)
		p.Day = &d
	}

	return p, nil
}
