// Package publisher pushes evaluated assessments onto a Redis stream for
// downstream consumers.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"

	"sprayguard/internal/config"
	"sprayguard/internal/metrics"
	"sprayguard/internal/models"
)

const (
	MaxRetries   = 3
	BreakerFails = 5
	BreakerOpen  = 30 * time.Second
)

// StreamClient is the subset of the Redis client used for publishing
type StreamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Publisher appends assessments to a capped Redis stream
type Publisher struct {
	client     StreamClient
	stream     string
	maxLen     int64
	breaker    *gobreaker.CircuitBreaker
	newBackOff func() backoff.BackOff
}

// Option customises a Publisher
type Option func(*Publisher)

// WithBackOff replaces the retry schedule
func WithBackOff(f func() backoff.BackOff) Option {
	return func(p *Publisher) { p.newBackOff = f }
}

// New builds a publisher for the stream described by cfg
func New(client StreamClient, cfg config.RedisConfig, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		stream: cfg.Stream,
		maxLen: cfg.MaxLen,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "redis-" + cfg.Stream,
			Timeout: BreakerOpen,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= BreakerFails
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("Circuit %s: %s -> %s", name, from, to)
			},
		}),
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 100 * time.Millisecond
			bo.MaxElapsedTime = 5 * time.Second
			return bo
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromConfig dials Redis with the given settings
func NewFromConfig(cfg config.RedisConfig) (*Publisher, *redis.Client) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return New(client, cfg), client
}

// Values builds the stream entry for an assessment
func Values(a *models.Assessment) (map[string]interface{}, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize assessment %s: %w", a.ID, err)
	}
	return map[string]interface{}{
		"id":      a.ID,
		"paddock": a.Paddock,
		"disease": string(a.Result.Disease),
		"tier":    string(a.Result.Risk.Tier),
		"data":    string(data),
	}, nil
}

// Publish appends the assessment to the stream, retrying transient failures.
// Once the breaker is open calls fail fast with gobreaker.ErrOpenState.
func (p *Publisher) Publish(ctx context.Context, a *models.Assessment) error {
	values, err := Values(a)
	if err != nil {
		metrics.RecordPublish(err)
		return err
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		attempt := 0
		op := func() error {
			attempt++
			err := p.client.XAdd(ctx, &redis.XAddArgs{
				Stream: p.stream,
				MaxLen: p.maxLen,
				Approx: true,
				Values: values,
			}).Err()
			if err != nil {
				log.Printf("Publish attempt %d for %s failed: %v", attempt, a.ID, err)
			}
			return err
		}
		bo := backoff.WithContext(backoff.WithMaxRetries(p.newBackOff(), MaxRetries-1), ctx)
		return nil, backoff.Retry(op, bo)
	})
	metrics.RecordPublish(err)
	if err != nil {
		return fmt.Errorf("failed to publish assessment %s: %w", a.ID, err)
	}
	return nil
}

// State reports the breaker state
func (p *Publisher) State() gobreaker.State {
	return p.breaker.State()
}

// Decode rebuilds an assessment from a stream entry written by Publish
func Decode(values map[string]interface{}) (*models.Assessment, error) {
	raw, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("stream entry has no data field")
	}
	var a models.Assessment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("failed to decode assessment: %w", err)
	}
	if a.ID == "" {
		return nil, fmt.Errorf("stream entry has no assessment id")
	}
	return &a, nil
}
