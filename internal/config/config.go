package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikolayk812/shopcheckout/internal/telemetry"
)

type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	RedisURL        string
	KafkaBrokers    []string
	KafkaTopic      string
	CartTTL         time.Duration
	ProductCacheTTL time.Duration
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
	Migrate         bool
	ServiceName     string
	OTLPEndpoint    string
}

// Load reads the optional .env file and then the process environment.
// Variables already set in the environment win over .env values.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	return FromEnv()
}

func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8000")
	cfg.RedisURL = getEnv("REDIS_URL", "redis://localhost:6379/0")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "orders")
	cfg.ServiceName = getEnv("OTEL_SERVICE_NAME", "shopcheckout")
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is empty")
	}

	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))

	if cfg.CartTTL, err = durationEnv("CART_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ProductCacheTTL, err = durationEnv("PRODUCT_CACHE_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.LogLevel, err = telemetry.ParseLevel(os.Getenv("LOG_LEVEL")); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg.Migrate, err = strconv.ParseBool(getEnv("MIGRATE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("MIGRATE: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s[%s] must be positive", key, v)
	}

	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
