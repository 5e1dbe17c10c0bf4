package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TripDay is one calendar day of a trip's timeline.
// Day is 1-based in start-date order; Label is the date rendered as
// short month + day ("Jan 5") for display.
type TripDay struct {
	Day   int       `json:"day"`
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
}

// TripDays derives the ordered list of trip days from a trip's date range.
// It returns an empty slice when either date is nil, and, deliberately,
// also when end precedes start: an inverted range yields no timeline rather
// than an error, because the range is validated at input time, not here.
// Time-of-day components on the inputs are ignored.
func TripDays(start, end *time.Time) []TripDay {
	if start == nil || end == nil {
		return []TripDay{}
	}

	s := truncateToDay(*start)
	e := truncateToDay(*end)

	days := []TripDay{}
	for d, num := s, 1; !d.After(e); d, num = d.AddDate(0, 0, 1), num+1 {
		days = append(days, TripDay{
			Day:   num,
			Date:  d,
			Label: d.Format("Jan 2"),
		})
	}
	return days
}

// GroupPinsByDay buckets pins by their day number and orders each bucket by
// ascending time of day. Pins without a day number are excluded; callers
// show those separately as unscheduled.
//
// The time format is zero-padded 24-hour "HH:MM", so lexicographic order is
// chronological order. Untimed pins sort after timed ones; among themselves
// they keep input order. Inputs are not mutated.
func GroupPinsByDay(pins []Pin) map[int][]Pin {
	buckets := make(map[int][]Pin)
	for _, p := range pins {
		if p.Day == nil {
			continue
		}
		buckets[*p.Day] = append(buckets[*p.Day], p)
	}

	for day := range buckets {
		sort.SliceStable(buckets[day], func(i, j int) bool {
			a, b := buckets[day][i].Time, buckets[day][j].Time
			if a == "" || b == "" {
				// Only "timed before untimed" is an ordering; two untimed
				// pins keep their input order.
				return a != "" && b == ""
			}
			return a < b
		})
	}
	return buckets
}

// FormatTime12Hour converts a 24-hour "HH:MM" string to a 12-hour clock with
// an AM/PM suffix: "00:30" → "12:30 AM", "12:30" → "12:30 PM", "23:59" →
// "11:59 PM". Empty input yields an empty string; anything that does not
// parse as HH:MM is returned unchanged rather than erroring; this is a
// display convenience, not a validator.
func FormatTime12Hour(t string) string {
	if t == "" {
		return ""
	}

	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return t
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return t
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, mm, suffix)
}

// truncateToDay strips the time-of-day component, keeping the location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
