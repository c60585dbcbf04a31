// Package app wires the catalog service's dependencies together and manages
// the server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lalimite123/agital-shop/internal/config"
	"github.com/lalimite123/agital-shop/internal/event"
	httphandler "github.com/lalimite123/agital-shop/internal/handler/http"
	repopostgres "github.com/lalimite123/agital-shop/internal/repository/postgres"
	reporedis "github.com/lalimite123/agital-shop/internal/repository/redis"
	"github.com/lalimite123/agital-shop/internal/service"
	"github.com/lalimite123/agital-shop/migrations"
	"github.com/lalimite123/agital-shop/pkg/database"
	"github.com/lalimite123/agital-shop/pkg/health"
	pkgkafka "github.com/lalimite123/agital-shop/pkg/kafka"
	"github.com/lalimite123/agital-shop/pkg/middleware"
	"github.com/lalimite123/agital-shop/pkg/tracing"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App holds the catalog service's long-lived resources.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redisClient    *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp builds the full dependency graph: database pool, migrations, Redis,
// Kafka producer, repositories, services, and the HTTP server. Redis being
// unreachable is not fatal; recent searches are simply disabled.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	pool, err := database.NewPostgresPoolWithLogger(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	database.RegisterPoolMetrics(pool, "catalog")

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "catalog",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		logger.Warn("redis unavailable, recent searches disabled",
			slog.String("addr", cfg.Redis().Addr()),
			slog.String("error", err.Error()),
		)
		redisClient = nil
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)

	productRepo := repopostgres.NewProductRepository(pool)
	reviewRepo := repopostgres.NewReviewRepository(pool)

	eventProducer := event.NewProducer(producer, logger)

	var recentStore *reporedis.RecentSearchStore
	if redisClient != nil {
		recentStore = reporedis.NewRecentSearchStore(redisClient)
	}

	catalogService := service.NewCatalogService(productRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, eventProducer, logger)

	var searchService *service.SearchService
	if recentStore != nil {
		searchService = service.NewSearchService(productRepo, recentStore, logger)
	} else {
		searchService = service.NewSearchService(productRepo, nil, logger)
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("kafka", producer.Ping)
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	router := httphandler.NewRouter(httphandler.RouterConfig{
		Catalog: catalogService,
		Reviews: reviewService,
		Search:  searchService,
		Health:  healthHandler,
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
		},
		Logger:        logger,
		TracingActive: cfg.OTELEnabled,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redisClient:    redisClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("catalog service listening",
			slog.String("addr", a.httpServer.Addr),
			slog.String("environment", a.cfg.Environment),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		return a.Shutdown()
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// Shutdown gracefully stops the HTTP server, then releases the producer,
// Redis client, database pool, and tracer.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	if err := a.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}

	if err := a.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close kafka producer: %w", err))
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis client: %w", err))
		}
	}

	a.pool.Close()

	if err := a.tracerShutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	a.logger.Info("catalog service stopped")
	return nil
}
