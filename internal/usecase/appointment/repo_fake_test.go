package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookora/booking-api/internal/audit"
	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/httperr"
	"github.com/bookora/booking-api/internal/models"
)

type offeringKey struct {
	providerID uint
	serviceID  uint
}

type hoursKey struct {
	providerID uint
	weekday    int
}

// fakeRepo is an in-memory Repository. CreateAppointment enforces the
// same no-overlap rule the database constraint does, under a mutex, so
// concurrent booking tests exercise the real conflict path.
type fakeRepo struct {
	mu sync.Mutex

	providers    map[uint]*models.ServiceProvider
	offerings    map[offeringKey]*models.ProviderService
	hours        map[hoursKey]*models.BusinessHours
	appointments map[uint]*models.Appointment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		providers:    make(map[uint]*models.ServiceProvider),
		offerings:    make(map[offeringKey]*models.ProviderService),
		hours:        make(map[hoursKey]*models.BusinessHours),
		appointments: make(map[uint]*models.Appointment),
	}
}

func (r *fakeRepo) addProvider(id, ownerID uint) {
	r.providers[id] = &models.ServiceProvider{ID: id, OwnerID: ownerID}
}

func (r *fakeRepo) addOffering(providerID, serviceID uint, durationMinutes int, available bool) {
	r.offerings[offeringKey{providerID, serviceID}] = &models.ProviderService{
		ServiceProviderID: providerID,
		ServiceID:         serviceID,
		DurationMinutes:   durationMinutes,
		IsAvailable:       available,
	}
}

func (r *fakeRepo) addHours(providerID uint, weekday int, open, close string) {
	r.hours[hoursKey{providerID, weekday}] = &models.BusinessHours{
		ServiceProviderID: providerID,
		Weekday:           weekday,
		OpenTime:          open,
		CloseTime:         close,
		IsOpen:            true,
	}
}

func (r *fakeRepo) GetServiceProviderByID(_ context.Context, id uint) (*models.ServiceProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) GetOffering(_ context.Context, providerID, serviceID uint) (*models.ProviderService, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.offerings[offeringKey{providerID, serviceID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (r *fakeRepo) GetBusinessHours(_ context.Context, providerID uint, weekday int) (*models.BusinessHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bh, ok := r.hours[hoursKey{providerID, weekday}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return bh, nil
}

func (r *fakeRepo) ListOpenBusinessHours(_ context.Context, providerID uint) ([]models.BusinessHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.BusinessHours
	for _, bh := range r.hours {
		if bh.ServiceProviderID == providerID && bh.IsOpen {
			out = append(out, *bh)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBookedIntervals(
	_ context.Context,
	providerID, serviceID uint,
	dayStart, dayEnd time.Time,
) ([]domain.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Interval
	for _, ap := range r.appointments {
		if ap.ServiceProviderID != providerID || ap.ServiceID != serviceID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.StartTime.Before(dayStart) || !ap.StartTime.Before(dayEnd) {
			continue
		}
		out = append(out, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return out, nil
}

func (r *fakeRepo) HasOverlappingAppointment(
	_ context.Context,
	providerID uint,
	start, end time.Time,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.overlapLocked(providerID, start, end), nil
}

func (r *fakeRepo) overlapLocked(providerID uint, start, end time.Time) bool {
	for _, ap := range r.appointments {
		if ap.ServiceProviderID != providerID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overlapLocked(ap.ServiceProviderID, ap.StartTime, ap.EndTime) {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	r.nextID++
	ap.ID = r.nextID
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeRepo) DeleteExpiredAppointments(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, ap := range r.appointments {
		if ap.EndTime.Before(now) {
			delete(r.appointments, id)
			removed++
		}
	}
	return removed, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zerolog.Nop())
}
