package appointment

import (
	"time"

	"github.com/bookora/booking-api/internal/models"
)

type AvailabilityInput struct {
	ServiceProviderID uint
	ServiceID         uint
	Date              time.Time
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Interval is a booked [Start, End) window stripped of everything
// irrelevant to conflict checking.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps is the single overlap definition used by slot generation and
// by booking validation. Intervals are half-open: touching endpoints do
// not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// AnchorClock places a "15:04" wall-clock string on the given date.
func AnchorClock(date time.Time, hm string) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

// OpenWindow resolves the business-hours window for one day. The second
// return is false when the provider is closed that day or the row is
// malformed.
func OpenWindow(bh *models.BusinessHours, date time.Time) (open, close time.Time, ok bool) {
	if bh == nil || !bh.IsOpen || bh.OpenTime == "" || bh.CloseTime == "" {
		return time.Time{}, time.Time{}, false
	}

	open = AnchorClock(date, bh.OpenTime)
	close = AnchorClock(date, bh.CloseTime)
	if open.IsZero() || close.IsZero() || !open.Before(close) {
		return time.Time{}, time.Time{}, false
	}

	return open, close, true
}
