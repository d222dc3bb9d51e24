package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/metrics"
)

// CleanupWorker periodically removes appointments whose end time has
// passed. Best-effort retention: a failed run is logged and the next
// tick tries again; nothing else depends on expired rows being absent.
type CleanupWorker struct {
	repo     domain.Repository
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewCleanupWorker(
	repo domain.Repository,
	interval time.Duration,
	log zerolog.Logger,
) *CleanupWorker {
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	return &CleanupWorker{
		repo:     repo,
		interval: interval,
		log:      log.With().Str("component", "cleanup").Logger(),
		now:      time.Now,
	}
}

// Start runs the sweep loop until ctx is cancelled. Call in a goroutine.
func (w *CleanupWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("cleanup worker starting")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("cleanup worker stopping")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. Errors are swallowed after logging.
func (w *CleanupWorker) RunOnce(ctx context.Context) {
	removed, err := w.repo.DeleteExpiredAppointments(ctx, w.now())
	if err != nil {
		w.log.Error().Err(err).Msg("failed to clean up expired appointments")
		return
	}

	if removed > 0 {
		metrics.AddCleanupRemoved(removed)
		w.log.Info().Int64("removed", removed).Msg("removed expired appointments")
	} else {
		w.log.Debug().Msg("no expired appointments to delete")
	}
}
