package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/config"
	"github.com/nikolayk812/shopcheckout/internal/db"
	"github.com/nikolayk812/shopcheckout/internal/events"
	"github.com/nikolayk812/shopcheckout/internal/gateway"
	"github.com/nikolayk812/shopcheckout/internal/httpx"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/nikolayk812/shopcheckout/internal/repository"
	"github.com/nikolayk812/shopcheckout/internal/service"
	"github.com/nikolayk812/shopcheckout/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger := telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry.SetupTracer: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db.NewPool: %w", err)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("db.Migrate: %w", err)
		}
		logger.Info("schema migrated")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis.ParseURL: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close failed", "error", err)
		}
	}()

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("publisher close failed", "error", err)
		}
	}()

	handler := newHandler(cfg, pool, redisClient, publisher, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(handler, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	return nil
}

func newPublisher(cfg config.Config, logger *slog.Logger) (port.EventPublisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, events are discarded")
		return events.NewNoop(), nil
	}

	publisher, err := events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, fmt.Errorf("events.NewKafka: %w", err)
	}
	return publisher, nil
}

func newHandler(
	cfg config.Config,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *httpx.Handler {
	orders := repository.NewOrder(pool)
	payments := repository.NewPayment(pool)
	products := repository.NewProduct(pool)
	carts := repository.NewCart(redisClient, cfg.CartTTL)
	productCache := repository.NewProductCache(redisClient, cfg.ProductCacheTTL)

	return httpx.NewHandler(
		service.NewCheckout(orders, products, carts, publisher, logger),
		service.NewPayments(orders, payments, gateway.NewMock(), publisher, logger),
		service.NewOrders(orders, publisher, logger),
		service.NewCatalog(products, productCache, logger),
		service.NewCarts(carts, products),
		map[string]httpx.HealthCheck{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
	)
}
