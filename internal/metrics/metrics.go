package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "booking_api",
			Name:      "appointments_created_total",
			Help:      "Appointments successfully booked.",
		},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "booking_api",
			Name:      "slot_conflicts_total",
			Help:      "Bookings rejected because the slot was taken, at pre-check or at commit.",
		},
	)

	cleanupRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "booking_api",
			Name:      "cleanup_removed_total",
			Help:      "Expired appointments removed by the cleanup sweeper.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, slotConflicts, cleanupRemoved)
	})
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncSlotConflict() {
	slotConflicts.Inc()
}

func AddCleanupRemoved(n int64) {
	cleanupRemoved.Add(float64(n))
}
