package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/models"
)

func TestIsTimeAvailable_OpenSlot(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := NewIsTimeAvailable(repo)

	ok, err := uc.Execute(context.Background(), testProviderID, testServiceID,
		monday.Add(9*time.Hour), monday.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsTimeAvailable_OutsideBusinessHours(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := NewIsTimeAvailable(repo)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"before open", monday.Add(8 * time.Hour), monday.Add(9 * time.Hour)},
		{"past close", monday.Add(11*time.Hour + 30*time.Minute), monday.Add(12*time.Hour + 30*time.Minute)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := uc.Execute(context.Background(), testProviderID, testServiceID, tc.start, tc.end)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestIsTimeAvailable_ClosedDay(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := NewIsTimeAvailable(repo)

	tuesday := monday.AddDate(0, 0, 1)
	ok, err := uc.Execute(context.Background(), testProviderID, testServiceID,
		tuesday.Add(9*time.Hour), tuesday.Add(10*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsTimeAvailable_Overlap(t *testing.T) {
	repo := setupScheduleRepo(60)
	require.NoError(t, repo.CreateAppointment(context.Background(), &models.Appointment{
		ServiceProviderID: testProviderID,
		ServiceID:         testServiceID,
		StartTime:         monday.Add(10 * time.Hour),
		EndTime:           monday.Add(11 * time.Hour),
		Status:            string(domain.StatusRequested),
	}))

	uc := NewIsTimeAvailable(repo)

	ok, err := uc.Execute(context.Background(), testProviderID, testServiceID,
		monday.Add(10*time.Hour+30*time.Minute), monday.Add(11*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsTimeAvailable_BackToBackBookings(t *testing.T) {
	repo := setupScheduleRepo(60)
	require.NoError(t, repo.CreateAppointment(context.Background(), &models.Appointment{
		ServiceProviderID: testProviderID,
		ServiceID:         testServiceID,
		StartTime:         monday.Add(10 * time.Hour),
		EndTime:           monday.Add(11 * time.Hour),
		Status:            string(domain.StatusRequested),
	}))

	uc := NewIsTimeAvailable(repo)

	// Touching endpoints do not conflict.
	ok, err := uc.Execute(context.Background(), testProviderID, testServiceID,
		monday.Add(11*time.Hour), monday.Add(12*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsTimeAvailable_OtherServiceOfSameProviderBlocks(t *testing.T) {
	repo := setupScheduleRepo(60)
	repo.addOffering(testProviderID, 11, 60, true)
	require.NoError(t, repo.CreateAppointment(context.Background(), &models.Appointment{
		ServiceProviderID: testProviderID,
		ServiceID:         11,
		StartTime:         monday.Add(10 * time.Hour),
		EndTime:           monday.Add(11 * time.Hour),
		Status:            string(domain.StatusRequested),
	}))

	uc := NewIsTimeAvailable(repo)

	// The provider can only serve one booking at a time, whatever the service.
	ok, err := uc.Execute(context.Background(), testProviderID, testServiceID,
		monday.Add(10*time.Hour), monday.Add(11*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsTimeAvailable_UnknownOffering(t *testing.T) {
	repo := setupScheduleRepo(60)
	uc := NewIsTimeAvailable(repo)

	ok, err := uc.Execute(context.Background(), testProviderID, 999,
		monday.Add(9*time.Hour), monday.Add(10*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
}
