package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kesbank/savings-eligibility/internal/adapter/http/handler"
	"github.com/kesbank/savings-eligibility/internal/adapter/http/middleware"
	"github.com/kesbank/savings-eligibility/internal/domain"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/auth"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/metrics"
	"github.com/kesbank/savings-eligibility/internal/usecase"
)

// RouterConfig holds dependencies for the router. JWTManager and
// IdempotencyStore are optional; leaving them nil disables the
// corresponding middleware.
type RouterConfig struct {
	EligibilityHandler *handler.EligibilityHandler
	AccountHandler     *handler.AccountHandler
	DecisionHandler    *handler.DecisionHandler
	HealthHandler      *handler.HealthHandler

	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Metrics)
		r.Use(limiter.Limit)
	}

	// Health and metrics endpoints, outside auth
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.Metrics))
		}

		r.Route("/eligibility", func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.RequireRole(domain.RoleTeller, domain.RoleSupervisor))
			}
			if cfg.IdempotencyStore != nil {
				idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Metrics)
				r.Use(idempotency.Wrap)
			}
			r.Post("/evaluate", cfg.EligibilityHandler.Evaluate)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/{number}", cfg.AccountHandler.Get)
		})

		r.Route("/decisions", func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.RequireRole(domain.RoleSupervisor, domain.RoleAuditor))
			}
			r.Get("/", cfg.DecisionHandler.List)
			r.Get("/{id}", cfg.DecisionHandler.Get)
		})
	})

	return r
}
