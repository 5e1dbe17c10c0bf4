package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
	"github.com/AnthonysMotion/mappr/backend/internal/repo"
)

// ExportService assembles a flat export of one trip's pins.
type ExportService struct {
	pins   repo.PinRepo
	cats   repo.CategoryRepo
	access *Access
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(pins repo.PinRepo, cats repo.CategoryRepo, access *Access) *ExportService {
	return &ExportService{pins: pins, cats: cats, access: access}
}

// Export returns one ExportRow per pin on the trip, with the trip fields
// repeated on every row. A trip with no pins yields a single row carrying
// only the trip fields. Requires view rights.
func (s *ExportService) Export(ctx context.Context, tripID, userID uuid.UUID) ([]domain.ExportRow, error) {
	trip, _, err := s.access.RequireView(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	pins, err := s.pins.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	cats, err := s.cats.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	catNames := make(map[uuid.UUID]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}

	base := domain.ExportRow{
		TripID:        trip.ID.String(),
		TripName:      trip.Name,
		TripStartDate: formatDate(trip.StartDate),
		TripEndDate:   formatDate(trip.EndDate),
	}

	if len(pins) == 0 {
		return []domain.ExportRow{base}, nil
	}

	rows := make([]domain.ExportRow, 0, len(pins))
	for _, p := range pins {
		row := base
		row.PinName = p.Name
		row.Latitude = p.Latitude
		row.Longitude = p.Longitude
		row.Day = p.Day
		row.Time = p.Time
		row.PinNotes = p.Description
		if p.CategoryID != nil {
			row.Category = catNames[*p.CategoryID]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// formatDate renders an optional calendar date as "2006-01-02", empty when nil.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
