package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "innkeep",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "innkeep",
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created.",
		},
	)

	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "innkeep",
			Name:      "bookings_cancelled_total",
			Help:      "Bookings cancelled.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "innkeep",
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts that lost the availability race.",
		},
	)

	occupancyTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "innkeep",
			Name:      "occupancy_transitions_total",
			Help:      "Guest check-in/check-out transitions.",
		},
		[]string{"transition"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingsCancelled, bookingConflicts, occupancyTransitions)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncBookingCreated()   { bookingsCreated.Inc() }
func IncBookingCancelled() { bookingsCancelled.Inc() }
func IncBookingConflict()  { bookingConflicts.Inc() }

// IncOccupancy records a check-in or check-out transition.
func IncOccupancy(transition string) {
	occupancyTransitions.WithLabelValues(transition).Inc()
}
