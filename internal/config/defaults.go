package config

import "time"

// Temporal connection constants.
const (
	DefaultTemporalHostPort = "localhost:7233"
	DefaultNamespace        = "default"
	DefaultTaskQueue        = "climlab-diagnostics"
)

// Event sink backends.
const (
	EventBackendNoop  = "noop"
	EventBackendRedis = "redis"
)

// Event sink constants.
const (
	DefaultRedisAddr        = "localhost:6379"
	DefaultEventStream      = "climlab:events"
	DefaultEventMaxLen      = 10000
	DefaultDedupTTL         = 24 * time.Hour
	DefaultPublishPerSecond = 50
	DefaultPublishBurst     = 100
)

// Worker constants.
const (
	DefaultMaxConcurrentActivities = 16
	DefaultLogLevel                = "info"
)

// DefaultConfig returns a configuration suitable for local development:
// a local Temporal frontend and events discarded.
func DefaultConfig() *Config {
	return &Config{
		Temporal: TemporalConfig{
			HostPort:  DefaultTemporalHostPort,
			Namespace: DefaultNamespace,
			TaskQueue: DefaultTaskQueue,
		},
		Events: EventsConfig{
			Backend:          EventBackendNoop,
			RedisAddr:        DefaultRedisAddr,
			Stream:           DefaultEventStream,
			MaxLen:           DefaultEventMaxLen,
			DedupTTL:         DefaultDedupTTL,
			PublishPerSecond: DefaultPublishPerSecond,
			PublishBurst:     DefaultPublishBurst,
		},
		Worker: WorkerConfig{
			MaxConcurrentActivities: DefaultMaxConcurrentActivities,
			LogLevel:                DefaultLogLevel,
		},
	}
}
