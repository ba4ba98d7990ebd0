package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// ErrSinkClosed is returned by Append after Close.
var ErrSinkClosed = errors.New("event sink closed")

// Redis stream sink defaults.
const (
	DefaultStream   = "climlab:events"
	DefaultMaxLen   = 10000
	DefaultDedupTTL = 24 * time.Hour

	dedupPrefix = "climlab:events:seen:"
)

// RedisSinkOptions configures a RedisStreamSink.
type RedisSinkOptions struct {
	// Stream is the Redis stream key events are appended to.
	Stream string

	// MaxLen caps the stream length with approximate trimming. Zero keeps
	// every entry.
	MaxLen int64

	// DedupTTL is how long an idempotency key is remembered.
	DedupTTL time.Duration

	// PublishPerSecond throttles appends. Zero disables throttling.
	PublishPerSecond float64

	// Burst is the number of appends allowed above PublishPerSecond.
	Burst int
}

// RedisStreamSink appends envelopes to a Redis stream. Duplicate idempotency
// keys are dropped using a SETNX marker; the marker is cleared again if the
// append itself fails so that a retry can succeed.
type RedisStreamSink struct {
	client   redis.UniversalClient
	stream   string
	maxLen   int64
	dedupTTL time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
	closed   chan struct{}
	once     sync.Once
}

// NewRedisStreamSink creates a sink on top of an existing client.
// The client is owned by the caller unless Close is used.
func NewRedisStreamSink(client redis.UniversalClient, opts RedisSinkOptions) *RedisStreamSink {
	if opts.Stream == "" {
		opts.Stream = DefaultStream
	}
	if opts.DedupTTL <= 0 {
		opts.DedupTTL = DefaultDedupTTL
	}

	var limiter *rate.Limiter
	if opts.PublishPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.PublishPerSecond), max(opts.Burst, 1))
	}

	return &RedisStreamSink{
		client:   client,
		stream:   opts.Stream,
		maxLen:   opts.MaxLen,
		dedupTTL: opts.DedupTTL,
		limiter:  limiter,
		logger:   slog.Default().With("component", "events.redis", "stream", opts.Stream),
		closed:   make(chan struct{}),
	}
}

// Append implements EventSink.
func (s *RedisStreamSink) Append(ctx context.Context, envelope Envelope) error {
	select {
	case <-s.closed:
		return ErrSinkClosed
	default:
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("event publish throttled: %w", err)
		}
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	var dedupKey string
	if envelope.IdempotencyKey != "" {
		dedupKey = dedupPrefix + envelope.IdempotencyKey
		fresh, err := s.client.SetNX(ctx, dedupKey, envelope.ID, s.dedupTTL).Result()
		if err != nil {
			return fmt.Errorf("redis dedup check: %w", err)
		}
		if !fresh {
			s.logger.Debug("dropping duplicate event",
				"event_type", envelope.Type,
				"idempotency_key", envelope.IdempotencyKey)
			return nil
		}
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":       envelope.ID,
			"type":     envelope.Type,
			"envelope": string(body),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		if dedupKey != "" {
			if delErr := s.client.Del(context.WithoutCancel(ctx), dedupKey).Err(); delErr != nil {
				s.logger.Warn("failed to clear dedup marker",
					"idempotency_key", envelope.IdempotencyKey,
					"error", delErr)
			}
		}
		return fmt.Errorf("redis xadd: %w", err)
	}
	return nil
}

// Close stops accepting events and closes the underlying client.
func (s *RedisStreamSink) Close() error {
	var err error
	s.once.Do(func() {
		close(s.closed)
		err = s.client.Close()
	})
	return err
}
