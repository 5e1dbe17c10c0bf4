package domain

// ExportRow is a single row in a trip's flat export.
// It is a denormalized view: one row per pin, with trip fields repeated for
// every pin. A trip with no pins yields one row with zero pin fields.
type ExportRow struct {
	// Trip fields, repeated for every pin on the trip.
	TripID        string
	TripName      string
	TripStartDate string // "2006-01-02", empty when the trip has no dates
	TripEndDate   string

	// Pin fields, zero values when the trip has no pins.
	PinName   string
	Latitude  float64
	Longitude float64
	Category  string // category name, empty when uncategorized
	Day       *int
	Time      string // 24-hour "HH:MM", empty when unscheduled
	PinNotes  string
}
