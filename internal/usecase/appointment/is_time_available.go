package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
)

type IsTimeAvailable struct {
	repo domain.Repository
}

func NewIsTimeAvailable(repo domain.Repository) *IsTimeAvailable {
	return &IsTimeAvailable{repo: repo}
}

// Execute re-derives the guards of slot generation for one candidate
// [start, end) window. It is re-run at booking time; the overlap
// semantics must stay identical to GetAvailableTimes or the listed
// slots and the server will disagree about validity.
func (uc *IsTimeAvailable) Execute(
	ctx context.Context,
	serviceProviderID uint,
	serviceID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	offering, err := uc.repo.GetOffering(ctx, serviceProviderID, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !offering.IsAvailable {
		return false, nil
	}

	bh, err := uc.repo.GetBusinessHours(ctx, serviceProviderID, int(start.Weekday()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	dayOpen, dayClose, ok := domain.OpenWindow(bh, start)
	if !ok {
		return false, nil
	}

	if start.Before(dayOpen) || end.After(dayClose) {
		return false, nil
	}

	// Conflicts are checked provider-wide: a booking for any of the
	// provider's services blocks the window.
	conflict, err := uc.repo.HasOverlappingAppointment(ctx, serviceProviderID, start, end)
	if err != nil {
		return false, err
	}

	return !conflict, nil
}
