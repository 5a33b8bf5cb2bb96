package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Evaluation metrics
	Evaluations        *prometheus.CounterVec
	Rejections         *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	EvaluationErrors   *prometheus.CounterVec

	// Account service metrics
	AccountAPIRequests *prometheus.CounterVec
	AccountAPIDuration *prometheus.HistogramVec
	AccountAPIRetries  prometheus.Counter
	AggregateFallbacks *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Decision log metrics
	DecisionsRecorded *prometheus.CounterVec
	DBQueries         *prometheus.CounterVec
	DBErrors          *prometheus.CounterVec

	// Redis metrics
	IdempotencyHits   prometheus.Counter
	IdempotencyMisses prometheus.Counter
	RedisErrors       *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Evaluation metrics
		Evaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_evaluations_total",
				Help: "Total eligibility evaluations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		Rejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_rejections_total",
				Help: "Total rejections by reason",
			},
			[]string{"reason"},
		),
		EvaluationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eligibility_evaluation_duration_seconds",
				Help:    "Duration of eligibility evaluations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		EvaluationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_evaluation_errors_total",
				Help: "Total evaluation aborts by error type",
			},
			[]string{"error_type"},
		),

		// Account service metrics
		AccountAPIRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_account_api_requests_total",
				Help: "Total account service requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		AccountAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eligibility_account_api_duration_seconds",
				Help:    "Account service request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		AccountAPIRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eligibility_account_api_retries_total",
			Help: "Total account service request retries",
		}),
		AggregateFallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_aggregate_fallbacks_total",
				Help: "Total limit checks skipped because the aggregate was unavailable",
			},
			[]string{"period"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eligibility_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Decision log metrics
		DecisionsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_decisions_recorded_total",
				Help: "Total decisions written to the audit log",
			},
			[]string{"outcome"},
		),
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		IdempotencyHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eligibility_idempotency_hits_total",
			Help: "Total idempotency key replays served from Redis",
		}),
		IdempotencyMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eligibility_idempotency_misses_total",
			Help: "Total first-seen idempotency keys",
		}),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eligibility_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
