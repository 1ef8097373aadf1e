// Package testutil starts the backing stores used by integration suites.
package testutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/db"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	postgresImage = "postgres:17-alpine"
	redisImage    = "redis:7-alpine"
)

// StartPostgres runs a postgres container, applies the schema and returns a ready pool.
func StartPostgres(ctx context.Context) (testcontainers.Container, *pgxpool.Pool, error) {
	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("shop"),
		postgres.WithUsername("shop"),
		postgres.WithPassword("shop"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	pool, err := db.NewPool(ctx, connStr)
	if err != nil {
		return container, nil, fmt.Errorf("db.NewPool: %w", err)
	}

	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return container, nil, fmt.Errorf("db.Migrate: %w", err)
	}

	return container, pool, nil
}

// StartRedis runs a redis container and returns a connected client.
func StartRedis(ctx context.Context) (testcontainers.Container, *redis.Client, error) {
	container, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		return nil, nil, fmt.Errorf("tcredis.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		return container, nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return container, nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return container, nil, fmt.Errorf("client.Ping: %w", err)
	}

	return container, client, nil
}

// TruncateAll empties every table, cascading from orders.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE payments, order_items, orders, products RESTART IDENTITY CASCADE")
	return err
}
