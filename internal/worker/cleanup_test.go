package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
)

// sweepRepo stubs only the cleanup call; the embedded interface covers
// the methods the worker never touches.
type sweepRepo struct {
	domain.Repository

	removed int64
	err     error

	calls []time.Time
}

func (r *sweepRepo) DeleteExpiredAppointments(_ context.Context, now time.Time) (int64, error) {
	r.calls = append(r.calls, now)
	return r.removed, r.err
}

func TestCleanupWorker_RunOnce(t *testing.T) {
	fixed := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)

	repo := &sweepRepo{removed: 3}
	w := NewCleanupWorker(repo, time.Minute, zerolog.Nop())
	w.now = func() time.Time { return fixed }

	w.RunOnce(context.Background())

	assert.Equal(t, []time.Time{fixed}, repo.calls)
}

func TestCleanupWorker_RunOnceSwallowsErrors(t *testing.T) {
	repo := &sweepRepo{err: errors.New("connection refused")}
	w := NewCleanupWorker(repo, time.Minute, zerolog.Nop())

	// Must not panic; the next tick retries.
	w.RunOnce(context.Background())

	assert.Len(t, repo.calls, 1)
}

func TestCleanupWorker_DefaultInterval(t *testing.T) {
	w := NewCleanupWorker(&sweepRepo{}, 0, zerolog.Nop())
	assert.Equal(t, 30*time.Minute, w.interval)
}

func TestCleanupWorker_StartStopsOnCancel(t *testing.T) {
	repo := &sweepRepo{}
	w := NewCleanupWorker(repo, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	assert.NotEmpty(t, repo.calls)
}
