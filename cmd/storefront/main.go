package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tair/storefront/internal/app"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/cache"
	"github.com/tair/storefront/pkg/config"
	"github.com/tair/storefront/pkg/database"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/tracing"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("storefront-service", true)
		logger.Logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	tp, err := tracing.InitTracer(cfg.ServiceName, version, cfg.JaegerEndpoint, cfg.TracingEnabled)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()

	responseCache, limiter := newRedisMiddlewares(ctx, cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	application, err := app.InitializeApp(cfg, db, publisher, responseCache, limiter, registry)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Store.Close()

	if err := application.Store.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	removed, err := application.Reconcile.Handle(ctx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to reconcile basket")
	}
	logger.Logger.Info().Int64("removed", removed).Msg("Basket reconciled")

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           application.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			errCh <- err
			return
		}
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC server starting")
		if err := application.GRPC.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Logger.Info().Msg("Shutting down servers...")
	case err := <-errCh:
		logger.Logger.Error().Err(err).Msg("Server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	application.GRPC.GracefulStop()

	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}

	logger.Logger.Info().Msg("Storefront stopped")
}

// newPublisher returns a Kafka publisher when brokers are configured. Events
// are optional, so a broker failure only disables them.
func newPublisher(cfg *config.Config) (kafka.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, events disabled")
		return kafka.NoopPublisher{}, func() {}
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events disabled")
		return kafka.NoopPublisher{}, func() {}
	}

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
		}
	}
}

// newRedisMiddlewares connects to Redis when REDIS_ADDR is set; otherwise
// the response cache and the rate limiter are pass-through.
func newRedisMiddlewares(ctx context.Context, cfg *config.Config) (*cache.ResponseCache, *cache.RateLimiter) {
	if cfg.RedisAddr == "" {
		return cache.NewResponseCache(nil, cfg.CacheTTL), cache.NewRateLimiter(nil, 0, time.Minute)
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Redis unavailable, response cache and rate limiting disabled")
		return cache.NewResponseCache(nil, cfg.CacheTTL), cache.NewRateLimiter(nil, 0, time.Minute)
	}

	return cache.NewResponseCache(client, cfg.CacheTTL, "/products", "/basket"),
		cache.NewRateLimiter(client, cfg.RateLimit, time.Minute)
}
