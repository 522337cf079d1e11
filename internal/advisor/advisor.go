// Package advisor runs evaluations on behalf of a paddock: it stamps each
// result with an ID and time, records metrics, and hands the result to the
// configured store and publisher.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"sprayguard/internal/engine"
	"sprayguard/internal/metrics"
	"sprayguard/internal/models"
)

// AssessmentStore persists evaluated assessments
type AssessmentStore interface {
	StoreAssessment(a *models.Assessment) error
}

// Publisher announces evaluated assessments to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, a *models.Assessment) error
}

// Advisor wraps an engine with identity, timing and side effects
type Advisor struct {
	engine    *engine.Engine
	store     AssessmentStore
	publisher Publisher
	clock     clockwork.Clock
}

// Option configures an Advisor
type Option func(*Advisor)

// WithClock sets the time source that stamps EvaluatedAt
func WithClock(c clockwork.Clock) Option {
	return func(a *Advisor) {
		a.clock = c
	}
}

// New creates an advisor on the real clock. store and publisher may be nil.
func New(e *engine.Engine, store AssessmentStore, publisher Publisher, opts ...Option) *Advisor {
	a := &Advisor{engine: e, store: store, publisher: publisher, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Engine returns the underlying engine
func (a *Advisor) Engine() *engine.Engine {
	return a.engine
}

// Assess evaluates req for a paddock. Evaluation and storage errors are
// returned; publish failures are logged and counted only.
func (a *Advisor) Assess(ctx context.Context, paddock string, req engine.Request) (*models.Assessment, error) {
	start := a.clock.Now()

	result, err := a.engine.Evaluate(req)
	if err != nil {
		metrics.RecordAssessmentError(ErrorReason(err))
		return nil, err
	}

	assessment := &models.Assessment{
		ID:          uuid.NewString(),
		Paddock:     paddock,
		EvaluatedAt: start.UTC(),
		Result:      *result,
	}

	recordResult(result)
	metrics.RecordAssessment(string(result.Disease), string(result.Risk.Tier), a.clock.Since(start))

	if a.store != nil {
		if err := a.store.StoreAssessment(assessment); err != nil {
			metrics.RecordAssessmentError("storage")
			return nil, fmt.Errorf("failed to store assessment for %s: %w", paddock, err)
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, assessment); err != nil {
			log.Printf("Failed to publish assessment %s for %s: %v", assessment.ID, paddock, err)
		}
	}

	return assessment, nil
}

func recordResult(r *models.RecommendationResult) {
	for _, w := range r.Warnings {
		metrics.RecordWarning(w.Rule)
	}
	for _, removed := range r.RemovedOptions {
		metrics.RecordFilteredOption(string(r.Disease), removed.Reason)
	}
	for range r.MoA.Unresolved {
		metrics.UnresolvedProductsTotal.Inc()
	}
}

// ErrorReason maps an evaluation error to its metric label
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, models.ErrUnsupportedPairing):
		return "unsupported_pairing"
	case errors.Is(err, models.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, models.ErrWeatherUnavailable):
		return "weather_unavailable"
	case errors.Is(err, models.ErrNoCatalog):
		return "no_catalog"
	default:
		return "internal"
	}
}
