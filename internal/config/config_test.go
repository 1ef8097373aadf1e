package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/nikolayk812/shopcheckout/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"HTTP_ADDR", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "KAFKA_TOPIC",
	"CART_TTL", "PRODUCT_CACHE_TTL", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "MIGRATE",
	"OTEL_SERVICE_NAME", "OTEL_EXPORTER_OTLP_ENDPOINT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/shop")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		HTTPAddr:        ":8000",
		DatabaseURL:     "postgres://localhost/shop",
		RedisURL:        "redis://localhost:6379/0",
		KafkaTopic:      "orders",
		CartTTL:         24 * time.Hour,
		ProductCacheTTL: 30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        slog.LevelInfo,
		Migrate:         true,
		ServiceName:     "shopcheckout",
	}, cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/shop")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CART_TTL", "1h")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MIGRATE", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4317")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Hour, cfg.CartTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.Migrate)
	assert.Equal(t, "http://collector:4317", cfg.OTLPEndpoint)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantError string
	}{
		{
			name:      "missing database url",
			env:       map[string]string{},
			wantError: "DATABASE_URL is empty",
		},
		{
			name:      "bad duration",
			env:       map[string]string{"DATABASE_URL": "x", "CART_TTL": "soon"},
			wantError: "CART_TTL: ",
		},
		{
			name:      "non-positive duration",
			env:       map[string]string{"DATABASE_URL": "x", "SHUTDOWN_TIMEOUT": "0s"},
			wantError: "SHUTDOWN_TIMEOUT[0s] must be positive",
		},
		{
			name:      "bad log level",
			env:       map[string]string{"DATABASE_URL": "x", "LOG_LEVEL": "loud"},
			wantError: "LOG_LEVEL: unknown log level[loud]",
		},
		{
			name:      "bad migrate flag",
			env:       map[string]string{"DATABASE_URL": "x", "MIGRATE": "maybe"},
			wantError: "MIGRATE: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
