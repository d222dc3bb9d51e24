package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/bookora/booking-api/internal/audit"
	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/httperr"
	"github.com/bookora/booking-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := uc.loadForActor(ctx, appointmentID, actorID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: ap.ServiceProviderID,
		UserID:            &actorID,
		Action:            "appointment_cancelled",
		Entity:            "appointment",
		EntityID:          &ap.ID,
	})

	return ap, nil
}

// loadForActor fetches the appointment and checks the actor is either
// the booking customer or the provider's owner.
func (uc *CancelAppointment) loadForActor(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
) (*models.Appointment, error) {
	return loadForActor(ctx, uc.repo, appointmentID, actorID)
}

func loadForActor(
	ctx context.Context,
	repo domain.Repository,
	appointmentID uint,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	if ap.CustomerID == actorID {
		return ap, nil
	}

	provider, err := repo.GetServiceProviderByID(ctx, ap.ServiceProviderID)
	if err == nil && provider.OwnerID == actorID {
		return ap, nil
	}

	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}
