// Package config holds the runtime configuration of the climlab worker.
// Values start from DefaultConfig and are overridden by CLIMLAB_*
// environment variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CLIMLAB_"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the worker configuration.
type Config struct {
	Temporal TemporalConfig `json:"temporal" envPrefix:"TEMPORAL_"`
	Events   EventsConfig   `json:"events" envPrefix:"EVENTS_"`
	Worker   WorkerConfig   `json:"worker" envPrefix:"WORKER_"`
}

// TemporalConfig locates the Temporal frontend and task queue.
type TemporalConfig struct {
	HostPort  string `json:"host_port" env:"HOST_PORT" validate:"required,hostname_port"`
	Namespace string `json:"namespace" env:"NAMESPACE" validate:"required"`
	TaskQueue string `json:"task_queue" env:"TASK_QUEUE" validate:"required"`
}

// EventsConfig selects and tunes the event sink.
type EventsConfig struct {
	Backend          string        `json:"backend" env:"BACKEND" validate:"oneof=noop redis"`
	RedisAddr        string        `json:"redis_addr" env:"REDIS_ADDR" validate:"required_if=Backend redis"`
	RedisPassword    string        `json:"-" env:"REDIS_PASSWORD"`
	RedisDB          int           `json:"redis_db" env:"REDIS_DB" validate:"min=0"`
	Stream           string        `json:"stream" env:"STREAM" validate:"required_if=Backend redis"`
	MaxLen           int64         `json:"max_len" env:"MAX_LEN" validate:"min=0"`
	DedupTTL         time.Duration `json:"dedup_ttl" env:"DEDUP_TTL" validate:"min=0"`
	PublishPerSecond float64       `json:"publish_per_second" env:"PUBLISH_PER_SECOND" validate:"min=0"`
	PublishBurst     int           `json:"publish_burst" env:"PUBLISH_BURST" validate:"min=0"`
}

// WorkerConfig tunes the Temporal worker process.
type WorkerConfig struct {
	MaxConcurrentActivities int    `json:"max_concurrent_activities" env:"MAX_CONCURRENT_ACTIVITIES" validate:"min=1"`
	LogLevel                string `json:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// Load returns DefaultConfig overlaid with CLIMLAB_* environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps Worker.LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Worker.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
