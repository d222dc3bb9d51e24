package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/httperr"
)

type GetAvailableDates struct {
	repo  domain.Repository
	times *GetAvailableTimes
	now   func() time.Time
}

func NewGetAvailableDates(repo domain.Repository) *GetAvailableDates {
	return &GetAvailableDates{
		repo:  repo,
		times: NewGetAvailableTimes(repo),
		now:   time.Now,
	}
}

// Execute walks the calendar from startDate through startDate+daysToShow
// inclusive and returns the days that currently have at least one
// bookable slot. A returned date is non-empty at query time; it can
// still be emptied by a concurrent booking before the caller proceeds.
func (uc *GetAvailableDates) Execute(
	ctx context.Context,
	serviceProviderID uint,
	serviceID uint,
	startDate time.Time,
	daysToShow int,
) ([]time.Time, error) {

	offering, err := uc.repo.GetOffering(ctx, serviceProviderID, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceUnavailable)
		}
		return nil, err
	}
	if !offering.IsAvailable {
		return nil, httperr.ErrBusiness(httperr.CodeServiceUnavailable)
	}

	// One business-hours fetch for the whole range; slot generation per
	// day still goes through GetAvailableTimes so both listings agree by
	// construction.
	hours, err := uc.repo.ListOpenBusinessHours(ctx, serviceProviderID)
	if err != nil {
		return nil, err
	}

	openWeekdays := make(map[int]bool, len(hours))
	for _, bh := range hours {
		openWeekdays[bh.Weekday] = true
	}

	dates := []time.Time{}
	if len(openWeekdays) == 0 {
		return dates, nil
	}

	today := startOfDay(uc.now())

	for i := 0; i <= daysToShow; i++ {
		day := startOfDay(startDate.AddDate(0, 0, i))

		if day.Before(today) {
			continue
		}
		if !openWeekdays[int(day.Weekday())] {
			continue
		}

		slots, err := uc.times.Execute(ctx, domain.AvailabilityInput{
			ServiceProviderID: serviceProviderID,
			ServiceID:         serviceID,
			Date:              day,
		})
		if err != nil {
			if httperr.IsBusiness(err, httperr.CodeClosedOnDate) {
				continue
			}
			return nil, err
		}

		if len(slots) > 0 {
			dates = append(dates, day)
		}
	}

	return dates, nil
}
