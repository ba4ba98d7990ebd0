package worker

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/deepkick/climlab/internal/config"
	"github.com/deepkick/climlab/pkg/events"
)

const redisPingTimeout = 5 * time.Second

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewEventSink builds the sink selected by cfg.Backend. The returned closer
// releases the sink's connections and must be called on shutdown.
func NewEventSink(ctx context.Context, cfg config.EventsConfig) (events.EventSink, io.Closer, error) {
	switch cfg.Backend {
	case config.EventBackendNoop, "":
		return events.NewNoOpEventSink(), nopCloser{}, nil
	case config.EventBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}

		sink := events.NewRedisStreamSink(client, events.RedisSinkOptions{
			Stream:           cfg.Stream,
			MaxLen:           cfg.MaxLen,
			DedupTTL:         cfg.DedupTTL,
			PublishPerSecond: cfg.PublishPerSecond,
			Burst:            cfg.PublishBurst,
		})
		return sink, sink, nil
	default:
		return nil, nil, fmt.Errorf("unknown event backend %q", cfg.Backend)
	}
}
