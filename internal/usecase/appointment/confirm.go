package appointment

import (
	"context"
	"time"

	"github.com/bookora/booking-api/internal/audit"
	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/models"
)

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := loadForActor(ctx, uc.repo, appointmentID, actorID)
	if err != nil {
		return nil, err
	}

	if err := domain.Confirm(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: ap.ServiceProviderID,
		UserID:            &actorID,
		Action:            "appointment_confirmed",
		Entity:            "appointment",
		EntityID:          &ap.ID,
	})

	return ap, nil
}
