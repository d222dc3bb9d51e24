package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/httperr"
	"github.com/bookora/booking-api/internal/models"
)

// Postgres error codes surfaced when the commit-time constraint catches
// a racing second insert.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Provider / Offering
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServiceProviderByID(
	ctx context.Context,
	id uint,
) (*models.ServiceProvider, error) {

	var provider models.ServiceProvider
	if err := r.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &provider, nil
}

func (r *AppointmentGormRepository) GetOffering(
	ctx context.Context,
	serviceProviderID uint,
	serviceID uint,
) (*models.ProviderService, error) {

	var offering models.ProviderService
	if err := r.db.WithContext(ctx).
		Where("service_provider_id = ? AND service_id = ?", serviceProviderID, serviceID).
		First(&offering).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &offering, nil
}

// --------------------------------------------------
// Business hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessHours(
	ctx context.Context,
	serviceProviderID uint,
	weekday int,
) (*models.BusinessHours, error) {

	var bh models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("service_provider_id = ? AND weekday = ?", serviceProviderID, weekday).
		First(&bh).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return &bh, nil
}

func (r *AppointmentGormRepository) ListOpenBusinessHours(
	ctx context.Context,
	serviceProviderID uint,
) ([]models.BusinessHours, error) {

	var hours []models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("service_provider_id = ? AND is_open = true", serviceProviderID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}

	return hours, nil
}

// --------------------------------------------------
// Appointment (availability reads)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedIntervals(
	ctx context.Context,
	serviceProviderID uint,
	serviceID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]domain.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"service_provider_id = ? AND service_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			serviceProviderID,
			serviceID,
			string(domain.StatusCancelled),
			dayStart,
			dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	intervals := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		intervals = append(intervals, domain.Interval{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}

	return intervals, nil
}

func (r *AppointmentGormRepository) HasOverlappingAppointment(
	ctx context.Context,
	serviceProviderID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"service_provider_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			serviceProviderID,
			string(domain.StatusCancelled),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Appointment (writes / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
		return err
	}

	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, appointmentID).Error
}

// --------------------------------------------------
// Cleanup
// --------------------------------------------------

func (r *AppointmentGormRepository) DeleteExpiredAppointments(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("end_time < ?", now).
		Delete(&models.Appointment{})

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
