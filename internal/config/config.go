package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	// StoreMemory keeps records in process memory; they are lost on restart.
	StoreMemory = "memory"
)

type Config struct {
	HTTP_PORT string `env:"HTTP_PORT"`
	// STORE selects the record store. Postgres is the default and needs
	// DB_STRING; memory must be asked for explicitly.
	STORE     string `env:"STORE"`
	DB_STRING string `env:"DB_STRING"`

	KAFKA_BROKERS      string `env:"KAFKA_BROKERS"`
	KAFKA_EVENTS_TOPIC string `env:"KAFKA_EVENTS_TOPIC"`
	KAFKA_INTAKE_TOPIC string `env:"KAFKA_INTAKE_TOPIC"`
	KAFKA_GROUP_ID     string `env:"KAFKA_GROUP_ID"`

	ADMIN_USERNAME string `env:"ADMIN_USERNAME"`
	ADMIN_PASSWORD string `env:"ADMIN_PASSWORD"`

	SESSION_TTL            time.Duration `env:"SESSION_TTL"`
	SESSION_SWEEP_SCHEDULE string        `env:"SESSION_SWEEP_SCHEDULE"`

	OTEL_ENDPOINT string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LOG_DEV       bool   `env:"LOG_DEV"`
}

// LoadConfig reads the process environment. A .env file in the working
// directory is loaded first when present; real env vars take precedence.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTP_PORT: getenv("HTTP_PORT", "8080"),
		STORE:     getenv("STORE", StorePostgres),
		DB_STRING: os.Getenv("DB_STRING"),

		KAFKA_BROKERS:      os.Getenv("KAFKA_BROKERS"),
		KAFKA_EVENTS_TOPIC: getenv("KAFKA_EVENTS_TOPIC", "orders-tracker.events"),
		KAFKA_INTAKE_TOPIC: getenv("KAFKA_INTAKE_TOPIC", "orders-tracker.intake"),
		KAFKA_GROUP_ID:     getenv("KAFKA_GROUP_ID", "orders-tracker"),

		ADMIN_USERNAME: getenv("ADMIN_USERNAME", "d"),
		ADMIN_PASSWORD: getenv("ADMIN_PASSWORD", "d"),

		SESSION_SWEEP_SCHEDULE: getenv("SESSION_SWEEP_SCHEDULE", "@every 10m"),

		OTEL_ENDPOINT: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	switch cfg.STORE {
	case StorePostgres:
		if cfg.DB_STRING == "" {
			return nil, fmt.Errorf("DB_STRING is required for STORE=%s (set STORE=%s to keep records in memory)", StorePostgres, StoreMemory)
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("STORE: unknown store %q", cfg.STORE)
	}

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.SESSION_TTL = ttl

	if v := os.Getenv("LOG_DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_DEV: %w", err)
		}
		cfg.LOG_DEV = dev
	}

	return cfg, nil
}

// KafkaEnabled reports whether brokers were configured.
func (c *Config) KafkaEnabled() bool {
	return c.KAFKA_BROKERS != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
