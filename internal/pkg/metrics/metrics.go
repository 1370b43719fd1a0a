package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SweepKindExpiredPromotion = "expired_promotion"
	SweepKindStartedCancel    = "started_conference"
)

var (
	// Successful engine mutations, labeled by the resulting booking status.
	Bookings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_total",
		Help: "Total number of successful book, confirm and cancel operations by resulting status",
	}, []string{"operation", "status"})

	// Business-rule failures, labeled by reason.
	BookingRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_rejections_total",
		Help: "Total number of engine operations rejected by a business rule",
	}, []string{"operation", "reason"})

	SweepProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweep_processed_total",
		Help: "Total number of bookings processed by reconciliation sweeps",
	}, []string{"kind"})

	SweepFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweep_failures_total",
		Help: "Total number of per-conference sweep transactions that failed",
	}, []string{"kind"})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sweep_duration_seconds",
		Help:    "Wall time of a full sweep pass",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests by method, route and status code",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
