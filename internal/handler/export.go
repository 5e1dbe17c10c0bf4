package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start_date", "trip_end_date",
	"pin_name", "latitude", "longitude", "category", "day", "time",
	"pin_notes",
}

// ExportTrip handles GET /trips/{tripID}/export.
// It returns a flat table with one row per pin, trip fields repeated on
// every row, and a single trip-only row for an empty trip. Use ?format=csv
// to receive CSV; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	rows, err := s.export.Export(r.Context(), tripID, userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, exportJSON(rows))
}

// exportJSON maps domain rows onto the wire field names.
func exportJSON(rows []domain.ExportRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		m := map[string]any{
			"trip_id":         row.TripID,
			"trip_name":       row.TripName,
			"trip_start_date": row.TripStartDate,
			"trip_end_date":   row.TripEndDate,
			"pin_name":        row.PinName,
			"latitude":        row.Latitude,
			"longitude":       row.Longitude,
			"category":        row.Category,
			"time":            row.Time,
			"pin_notes":       row.PinNotes,
		}
		if row.Day != nil {
			m["day"] = *row.Day
		}
		out = append(out, m)
	}
	return out
}

// writeCSV encodes the rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(csvRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-export.csv"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// csvRecord encodes one export row as a flat string slice.
// A pin-less row keeps its coordinate cells empty rather than "0".
func csvRecord(row domain.ExportRow) []string {
	lat, lng := "", ""
	if row.PinName != "" {
		lat = strconv.FormatFloat(row.Latitude, 'f', -1, 64)
		lng = strconv.FormatFloat(row.Longitude, 'f', -1, 64)
	}
	day := ""
	if row.Day != nil {
		day = strconv.Itoa(*row.Day)
	}
	return []string{
		row.TripID,
		row.TripName,
		row.TripStartDate,
		row.TripEndDate,
		row.PinName,
		lat,
		lng,
		row.Category,
		day,
		row.Time,
		row.PinNotes,
	}
}
