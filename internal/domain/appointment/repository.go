package appointment

import (
	"context"
	"time"

	"github.com/bookora/booking-api/internal/models"
)

type Repository interface {
	// -------- Provider / Offering --------
	GetServiceProviderByID(
		ctx context.Context,
		id uint,
	) (*models.ServiceProvider, error)

	GetOffering(
		ctx context.Context,
		serviceProviderID uint,
		serviceID uint,
	) (*models.ProviderService, error)

	// -------- Business hours --------
	GetBusinessHours(
		ctx context.Context,
		serviceProviderID uint,
		weekday int,
	) (*models.BusinessHours, error)

	ListOpenBusinessHours(
		ctx context.Context,
		serviceProviderID uint,
	) ([]models.BusinessHours, error)

	// -------- Appointment (availability reads) --------
	ListBookedIntervals(
		ctx context.Context,
		serviceProviderID uint,
		serviceID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]Interval, error)

	HasOverlappingAppointment(
		ctx context.Context,
		serviceProviderID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Appointment (writes / state change) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Cleanup --------
	DeleteExpiredAppointments(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
