package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/bookora/booking-api/internal/audit"
	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/httperr"
	"github.com/bookora/booking-api/internal/metrics"
	"github.com/bookora/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceProviderID uint
	ServiceID         uint
	CustomerID        uint

	StartTime time.Time
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	check *IsTimeAvailable
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		check: NewIsTimeAvailable(repo),
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	offering, err := uc.repo.GetOffering(ctx, in.ServiceProviderID, in.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	if !offering.IsAvailable {
		return nil, httperr.ErrBusiness(httperr.CodeServiceUnavailable)
	}

	// Duration is snapshotted into the appointment interval; later
	// offering edits never resize existing bookings.
	end := in.StartTime.Add(time.Duration(offering.DurationMinutes) * time.Minute)

	if !in.StartTime.After(uc.now()) {
		return nil, httperr.ErrBusiness(httperr.CodeInThePast)
	}

	available, err := uc.check.Execute(
		ctx,
		in.ServiceProviderID,
		in.ServiceID,
		in.StartTime,
		end,
	)
	if err != nil {
		return nil, err
	}
	if !available {
		metrics.IncSlotConflict()
		return nil, httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	ap := &models.Appointment{
		ServiceProviderID: in.ServiceProviderID,
		ServiceID:         in.ServiceID,
		CustomerID:        in.CustomerID,
		StartTime:         in.StartTime,
		EndTime:           end,
		Status:            string(domain.InitialStatus()),
		Notes:             in.Notes,
	}

	// The pre-check and the insert are separate statements; a second
	// writer can land between them. The storage constraint turns that
	// race into a conflict error here.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			metrics.IncSlotConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated()

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: in.ServiceProviderID,
		UserID:            &in.CustomerID,
		Action:            "appointment_created",
		Entity:            "appointment",
		EntityID:          &ap.ID,
	})

	return ap, nil
}
