package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/httperr"
)

type GetAvailableTimes struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailableTimes(repo domain.Repository) *GetAvailableTimes {
	return &GetAvailableTimes{repo: repo, now: time.Now}
}

func (uc *GetAvailableTimes) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	offering, err := uc.repo.GetOffering(ctx, in.ServiceProviderID, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceUnavailable)
		}
		return nil, err
	}
	if !offering.IsAvailable {
		return nil, httperr.ErrBusiness(httperr.CodeServiceUnavailable)
	}

	weekday := int(in.Date.Weekday())

	bh, err := uc.repo.GetBusinessHours(ctx, in.ServiceProviderID, weekday)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeClosedOnDate)
		}
		return nil, err
	}

	dayOpen, dayClose, ok := domain.OpenWindow(bh, in.Date)
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeClosedOnDate)
	}

	dayStart := startOfDay(in.Date)
	booked, err := uc.repo.ListBookedIntervals(
		ctx,
		in.ServiceProviderID,
		in.ServiceID,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(offering.DurationMinutes) * time.Minute

	now := uc.now()
	today := startOfDay(now).Equal(dayStart)

	// Walk the window in duration-sized steps. The last slot must end at
	// or before close: no partial trailing slot.
	var slots []domain.TimeSlot
	for cur := dayOpen; !cur.Add(duration).After(dayClose); cur = cur.Add(duration) {
		slotEnd := cur.Add(duration)

		if today && cur.Before(now) {
			continue
		}

		conflict := false
		for _, b := range booked {
			if domain.Overlaps(cur, slotEnd, b.Start, b.End) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: cur,
				End:   slotEnd,
				Label: slotLabel(cur, slotEnd),
			})
		}
	}

	return slots, nil
}

func slotLabel(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("3:04 PM"), end.Format("3:04 PM"))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
