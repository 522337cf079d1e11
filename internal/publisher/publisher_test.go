package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprayguard/internal/config"
	"sprayguard/internal/models"
)

type fakeStream struct {
	mu       sync.Mutex
	failures int
	calls    int
	last     *redis.XAddArgs
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = a
	if f.failures > 0 {
		f.failures--
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	return redis.NewStringResult("1700000000000-0", nil)
}

func newTestPublisher(client StreamClient) *Publisher {
	cfg := config.RedisConfig{Stream: "spray_assessments", MaxLen: 100}
	return New(client, cfg, WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }))
}

func sampleAssessment() *models.Assessment {
	return &models.Assessment{
		ID:      "b7e4a0c2-1d1f-4c43-9a55-0c4d3c1f9e10",
		Paddock: "Back Forty",
		Result: models.RecommendationResult{
			Disease: models.DiseaseRust,
			Risk:    models.RiskAssessment{Disease: models.DiseaseRust, Score: 5, Tier: models.RiskHigh},
		},
	}
}

func TestPublish_Success(t *testing.T) {
	client := &fakeStream{}
	p := newTestPublisher(client)

	require.NoError(t, p.Publish(context.Background(), sampleAssessment()))

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "spray_assessments", client.last.Stream)
	assert.Equal(t, int64(100), client.last.MaxLen)
	assert.True(t, client.last.Approx)

	values := client.last.Values.(map[string]interface{})
	assert.Equal(t, "Back Forty", values["paddock"])
	assert.Equal(t, "High", values["tier"])

	var decoded models.Assessment
	require.NoError(t, json.Unmarshal([]byte(values["data"].(string)), &decoded))
	assert.Equal(t, models.DiseaseRust, decoded.Result.Disease)
}

func TestPublish_RetriesTransientFailures(t *testing.T) {
	client := &fakeStream{failures: 2}
	p := newTestPublisher(client)

	require.NoError(t, p.Publish(context.Background(), sampleAssessment()))
	assert.Equal(t, 3, client.calls)
}

func TestPublish_GivesUpAfterMaxRetries(t *testing.T) {
	client := &fakeStream{failures: 10}
	p := newTestPublisher(client)

	err := p.Publish(context.Background(), sampleAssessment())
	require.Error(t, err)
	assert.Equal(t, MaxRetries, client.calls)
}

func TestPublish_BreakerOpens(t *testing.T) {
	client := &fakeStream{failures: 1000}
	p := newTestPublisher(client)

	for i := 0; i < BreakerFails; i++ {
		require.Error(t, p.Publish(context.Background(), sampleAssessment()))
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	calls := client.calls
	err := p.Publish(context.Background(), sampleAssessment())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, calls, client.calls, "open breaker must not reach redis")
}

func TestDecode(t *testing.T) {
	values, err := Values(sampleAssessment())
	require.NoError(t, err)

	got, err := Decode(values)
	require.NoError(t, err)
	assert.Equal(t, sampleAssessment().ID, got.ID)
	assert.Equal(t, models.RiskHigh, got.Result.Risk.Tier)

	_, err = Decode(map[string]interface{}{"id": "x"})
	assert.Error(t, err)

	_, err = Decode(map[string]interface{}{"data": `{"paddock":"no id"}`})
	assert.Error(t, err)
}
