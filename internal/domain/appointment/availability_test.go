package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookora/booking-api/internal/models"
)

var day = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contained", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"touching end to start", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"touching start to end", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestAnchorClock(t *testing.T) {
	got := AnchorClock(day, "09:30")
	assert.Equal(t, at(9, 30), got)

	assert.True(t, AnchorClock(day, "nonsense").IsZero())
	assert.True(t, AnchorClock(day, "").IsZero())
}

func TestOpenWindow(t *testing.T) {
	bh := &models.BusinessHours{OpenTime: "09:00", CloseTime: "17:00", IsOpen: true}

	open, close, ok := OpenWindow(bh, day)
	require.True(t, ok)
	assert.Equal(t, at(9, 0), open)
	assert.Equal(t, at(17, 0), close)
}

func TestOpenWindow_Rejects(t *testing.T) {
	cases := []struct {
		name string
		bh   *models.BusinessHours
	}{
		{"nil row", nil},
		{"closed day", &models.BusinessHours{OpenTime: "09:00", CloseTime: "17:00", IsOpen: false}},
		{"empty open time", &models.BusinessHours{CloseTime: "17:00", IsOpen: true}},
		{"empty close time", &models.BusinessHours{OpenTime: "09:00", IsOpen: true}},
		{"inverted window", &models.BusinessHours{OpenTime: "17:00", CloseTime: "09:00", IsOpen: true}},
		{"zero-length window", &models.BusinessHours{OpenTime: "09:00", CloseTime: "09:00", IsOpen: true}},
		{"malformed time", &models.BusinessHours{OpenTime: "9am", CloseTime: "17:00", IsOpen: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, ok := OpenWindow(tc.bh, day)
			assert.False(t, ok)
		})
	}
}
