package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/kesbank/savings-eligibility/internal/adapter/accountapi"
	httpAdapter "github.com/kesbank/savings-eligibility/internal/adapter/http"
	"github.com/kesbank/savings-eligibility/internal/adapter/http/handler"
	postgresRepo "github.com/kesbank/savings-eligibility/internal/adapter/repository/postgres"
	redisRepo "github.com/kesbank/savings-eligibility/internal/adapter/repository/redis"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/auth"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/config"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/logger"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/metrics"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/postgres"
	"github.com/kesbank/savings-eligibility/internal/infrastructure/redis"
	"github.com/kesbank/savings-eligibility/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	m := metrics.New()

	// Account service client, the evaluator's only required dependency
	accountClient := accountapi.NewClient(accountapi.Config{
		BaseURL:          cfg.AccountAPIURL,
		APIKey:           cfg.AccountAPIKey,
		Timeout:          cfg.AccountAPITimeout,
		AggregateTimeout: cfg.AccountAPIAggregateTimeout,
		MaxRetries:       cfg.AccountAPIMaxRetries,
	}, appLogger)

	// PostgreSQL decision log, optional
	var (
		pool         *pgxpool.Pool
		decisionRepo usecase.DecisionRepository = postgresRepo.NewNullDecisionRepository()
	)
	if cfg.DatabaseURL != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()

		decisionRepo = postgresRepo.NewDecisionRepository(pool)
		log.Info().Msg("decision log enabled")
	} else {
		log.Warn().Msg("DATABASE_URL not set, decisions will not be recorded")
	}

	// Redis idempotency store, optional
	var (
		redisClient      *redislib.Client
		idempotencyStore usecase.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		log.Info().Msg("idempotency enabled")
	} else {
		log.Warn().Msg("REDIS_URL not set, idempotency replay disabled")
	}

	// JWT authentication, optional
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("authentication enabled")
	}

	// Use cases
	eligibilityUC := usecase.NewEligibilityUseCase(accountClient, accountClient)
	decisionUC := usecase.NewDecisionUseCase(decisionRepo, postgresRepo.NewULIDGenerator())

	// Handlers
	eligibilityHandler := handler.NewEligibilityHandler(eligibilityUC, decisionUC, m, appLogger)
	accountHandler := handler.NewAccountHandler(accountClient)
	decisionHandler := handler.NewDecisionHandler(decisionUC)
	healthHandler := handler.NewHealthHandler(accountClient, pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EligibilityHandler: eligibilityHandler,
		AccountHandler:     accountHandler,
		DecisionHandler:    decisionHandler,
		HealthHandler:      healthHandler,
		Logger:             appLogger,
		Metrics:            m,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
