package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counters
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	JobsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_created_total",
			Help: "Total number of jobs created through the API",
		},
	)

	JobsUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_updated_total",
			Help: "Total number of jobs updated through the API",
		},
	)

	JobsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_deleted_total",
			Help: "Total number of jobs deleted through the API",
		},
	)

	SeededJobsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_seeded_jobs_total",
			Help: "Sample jobs inserted by the startup seed",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	// Buckets: 1ms .. ~4s
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 13),
		},
		[]string{"method", "route"},
	)
)

// RegisterStateGauges exposes the stored-job count and open /events streams
// on reg. Both are evaluated at scrape time.
func RegisterStateGauges(reg prometheus.Registerer, storedJobs, subscribers func() float64) {
	factory := promauto.With(reg)
	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "jobboard_jobs_stored",
			Help: "Jobs currently stored, published or not",
		},
		storedJobs,
	)
	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "jobboard_event_subscribers",
			Help: "Open /events streams",
		},
		subscribers,
	)
}
