package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/httperr"
)

func newCreateUC(repo *fakeRepo, now time.Time) *CreateAppointment {
	uc := NewCreateAppointment(repo, testDispatcher())
	uc.now = fixedClock(now)
	return uc
}

func createInput(start time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		ServiceProviderID: testProviderID,
		ServiceID:         testServiceID,
		CustomerID:        testCustomerID,
		StartTime:         start,
		Notes:             "first visit",
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	ap, err := uc.Execute(context.Background(), createInput(monday.Add(9*time.Hour)))
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(domain.StatusRequested), ap.Status)
	assert.Equal(t, monday.Add(9*time.Hour), ap.StartTime)
	assert.Equal(t, monday.Add(10*time.Hour), ap.EndTime)
	assert.Equal(t, testCustomerID, ap.CustomerID)
	assert.Equal(t, "first visit", ap.Notes)
}

func TestCreateAppointment_StartInThePast(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := newCreateUC(repo, monday.Add(10*time.Hour))

	_, err := uc.Execute(context.Background(), createInput(monday.Add(9*time.Hour)))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInThePast))
}

func TestCreateAppointment_StartExactlyNow(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := newCreateUC(repo, monday.Add(9*time.Hour))

	_, err := uc.Execute(context.Background(), createInput(monday.Add(9*time.Hour)))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInThePast))
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	_, err := uc.Execute(context.Background(), createInput(monday.Add(9*time.Hour)))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), createInput(monday.Add(9*time.Hour)))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}

func TestCreateAppointment_OutsideBusinessHours(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	_, err := uc.Execute(context.Background(), createInput(monday.Add(14*time.Hour)))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}

func TestCreateAppointment_UnknownOffering(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	in := createInput(monday.Add(9 * time.Hour))
	in.ServiceID = 999

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestCreateAppointment_DisabledOffering(t *testing.T) {
	repo := setupScheduleRepo(60)
	repo.offerings[offeringKey{testProviderID, testServiceID}].IsAvailable = false
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	_, err := uc.Execute(context.Background(), createInput(monday.Add(9*time.Hour)))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceUnavailable))
}

func TestCreateAppointment_ConcurrentBookingsOneWins(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	const writers = 8

	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := createInput(monday.Add(9 * time.Hour))
			in.CustomerID = testCustomerID + uint(i)
			_, errs[i] = uc.Execute(context.Background(), in)
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
		}
	}
	assert.Equal(t, 1, won)
}

func TestCreateAppointment_BookedSlotDisappearsFromListing(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := newCreateUC(repo, monday.AddDate(0, 0, -1))

	times := NewGetAvailableTimes(repo)
	times.now = fixedClock(monday.AddDate(0, 0, -1))

	before, err := times.Execute(context.Background(), availabilityInput(monday))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), createInput(monday.Add(9*time.Hour)))
	require.NoError(t, err)

	after, err := times.Execute(context.Background(), availabilityInput(monday))
	require.NoError(t, err)
	assert.Len(t, after, len(before)-1)
}
