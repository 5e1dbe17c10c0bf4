package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/domain"
)

// ---- helpers ---------------------------------------------------------------

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func pinOn(day int, timeOfDay string) domain.Pin {
	return domain.Pin{Name: "pin", Day: &day, Time: timeOfDay}
}

// ---- TripDays --------------------------------------------------------------

func TestTripDays_InclusiveRange(t *testing.T) {
	days := domain.TripDays(date(2025, time.January, 5), date(2025, time.January, 9))

	require.Len(t, days, 5)
	for i, d := range days {
		assert.Equal(t, i+1, d.Day)
		assert.Equal(t, date(2025, time.January, 5+i).UTC(), d.Date)
	}
	assert.Equal(t, "Jan 5", days[0].Label)
	assert.Equal(t, "Jan 9", days[4].Label)
}

func TestTripDays_SingleDay(t *testing.T) {
	days := domain.TripDays(date(2025, time.June, 1), date(2025, time.June, 1))

	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, "Jun 1", days[0].Label)
}

func TestTripDays_NilDates(t *testing.T) {
	assert.Empty(t, domain.TripDays(nil, nil))
	assert.Empty(t, domain.TripDays(date(2025, time.June, 1), nil))
	assert.Empty(t, domain.TripDays(nil, date(2025, time.June, 1)))
}

func TestTripDays_InvertedRange_Empty(t *testing.T) {
	// end before start is a silent no-timeline outcome, not an error.
	days := domain.TripDays(date(2025, time.June, 10), date(2025, time.June, 1))

	assert.Empty(t, days)
}

func TestTripDays_IgnoresTimeOfDay(t *testing.T) {
	// A late start and an early end must not drop the last day.
	start := time.Date(2025, time.March, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 3, 0, 15, 0, 0, time.UTC)

	days := domain.TripDays(&start, &end)

	require.Len(t, days, 3)
	assert.Equal(t, "Mar 3", days[2].Label)
}

func TestTripDays_CrossesMonthBoundary(t *testing.T) {
	days := domain.TripDays(date(2025, time.January, 30), date(2025, time.February, 2))

	require.Len(t, days, 4)
	assert.Equal(t, "Jan 30", days[0].Label)
	assert.Equal(t, "Feb 2", days[3].Label)
}

// ---- GroupPinsByDay --------------------------------------------------------

func TestGroupPinsByDay_ExcludesUnscheduled(t *testing.T) {
	pins := []domain.Pin{
		pinOn(1, "09:00"),
		{Name: "unscheduled"}, // no day, must not appear in any bucket
		pinOn(2, "10:00"),
	}

	buckets := domain.GroupPinsByDay(pins)

	require.Len(t, buckets, 2)
	assert.Len(t, buckets[1], 1)
	assert.Len(t, buckets[2], 1)
}

func TestGroupPinsByDay_OrdersByTime(t *testing.T) {
	pins := []domain.Pin{
		pinOn(1, "14:30"),
		pinOn(1, "09:05"),
		pinOn(1, "23:59"),
		pinOn(1, "00:15"),
	}

	buckets := domain.GroupPinsByDay(pins)

	require.Len(t, buckets[1], 4)
	got := []string{buckets[1][0].Time, buckets[1][1].Time, buckets[1][2].Time, buckets[1][3].Time}
	assert.Equal(t, []string{"00:15", "09:05", "14:30", "23:59"}, got)
}

func TestGroupPinsByDay_UntimedSortAfterTimed(t *testing.T) {
	first := pinOn(3, "")
	first.Name = "untimed-a"
	second := pinOn(3, "")
	second.Name = "untimed-b"

	pins := []domain.Pin{first, pinOn(3, "18:00"), second, pinOn(3, "08:00")}

	buckets := domain.GroupPinsByDay(pins)

	require.Len(t, buckets[3], 4)
	assert.Equal(t, "08:00", buckets[3][0].Time)
	assert.Equal(t, "18:00", buckets[3][1].Time)
	// Untimed pins come last, keeping their input order.
	assert.Equal(t, "untimed-a", buckets[3][2].Name)
	assert.Equal(t, "untimed-b", buckets[3][3].Name)
}

func TestGroupPinsByDay_DoesNotMutateInput(t *testing.T) {
	pins := []domain.Pin{pinOn(1, "14:00"), pinOn(1, "09:00")}

	domain.GroupPinsByDay(pins)

	assert.Equal(t, "14:00", pins[0].Time)
	assert.Equal(t, "09:00", pins[1].Time)
}

func TestGroupPinsByDay_EmptyInput(t *testing.T) {
	assert.Empty(t, domain.GroupPinsByDay(nil))
}

// ---- FormatTime12Hour ------------------------------------------------------

func TestFormatTime12Hour(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"09:05", "9:05 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"12:30", "12:30 PM"},
		{"13:15", "1:15 PM"},
		{"23:59", "11:59 PM"},
		{"", ""},
		{"not-a-time", "not-a-time"}, // malformed input passes through
	}

	for _, c := range cases {
		assert.Equal(t, c.want, domain.FormatTime12Hour(c.in), "input %q", c.in)
	}
}
