package appointment

import (
	"context"

	"github.com/bookora/booking-api/internal/audit"
	domain "github.com/bookora/booking-api/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
) error {

	ap, err := loadForActor(ctx, uc.repo, appointmentID, actorID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: ap.ServiceProviderID,
		UserID:            &actorID,
		Action:            "appointment_deleted",
		Entity:            "appointment",
		EntityID:          &ap.ID,
	})

	return nil
}
