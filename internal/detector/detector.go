package detector

import (
	"fmt"

	"sprayguard/internal/models"
)

// ModelVersion identifies the threshold tables below. Bump it whenever a
// constant changes so stored assessments can be traced to their model.
const ModelVersion = "2025.1"

// Scorer computes the risk of one disease from weather, crop and treatment inputs
type Scorer interface {
	Disease() models.Disease
	Supports(crop models.CropKind) bool
	Score(w models.WeatherSnapshot, c models.CropContext, u models.MoAUsage) models.RiskAssessment
}

// RiskDetector dispatches to the scorer registered for a disease
type RiskDetector struct {
	scorers map[models.Disease]Scorer
}

// NewRiskDetector creates a detector with every built-in disease model
func NewRiskDetector() *RiskDetector {
	d := &RiskDetector{scorers: make(map[models.Disease]Scorer)}
	for _, s := range []Scorer{RustScorer{}, SeptoriaScorer{}, SclerotiniaScorer{}, BlacklegScorer{}} {
		d.scorers[s.Disease()] = s
	}
	return d
}

// Detect scores the disease for the given inputs. Inputs are assumed valid.
func (d *RiskDetector) Detect(disease models.Disease, w models.WeatherSnapshot, c models.CropContext, u models.MoAUsage) (models.RiskAssessment, error) {
	s, err := d.scorerFor(disease, c.Crop)
	if err != nil {
		return models.RiskAssessment{}, err
	}
	return s.Score(w, c, u), nil
}

// CheckPairing returns ErrUnsupportedPairing unless a scorer handles the disease on the crop
func (d *RiskDetector) CheckPairing(disease models.Disease, crop models.CropKind) error {
	_, err := d.scorerFor(disease, crop)
	return err
}

func (d *RiskDetector) scorerFor(disease models.Disease, crop models.CropKind) (Scorer, error) {
	s, ok := d.scorers[disease]
	if !ok {
		return nil, fmt.Errorf("%w: no risk model for %q", models.ErrUnsupportedPairing, disease)
	}
	if !s.Supports(crop) {
		return nil, fmt.Errorf("%w: %s is not assessed on %s", models.ErrUnsupportedPairing, disease, crop)
	}
	return s, nil
}

// band awards points when a value crosses limit: from below for atLeast,
// from above for atMost. Bands are listed most severe first.
type band struct {
	limit  float64
	points float64
}

// atLeast returns the points of the first band whose limit the value reaches
func atLeast(v float64, bands ...band) float64 {
	for _, b := range bands {
		if v >= b.limit {
			return b.points
		}
	}
	return 0
}

// atMost returns the points of the first band whose limit the value does not exceed
func atMost(v float64, bands ...band) float64 {
	for _, b := range bands {
		if v <= b.limit {
			return b.points
		}
	}
	return 0
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func tierFor(score, high, moderate float64) models.RiskTier {
	switch {
	case score >= high:
		return models.RiskHigh
	case score >= moderate:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

func stageIn(c models.CropContext, stages ...string) bool {
	code := c.StageCode()
	for _, s := range stages {
		if code == s {
			return true
		}
	}
	return false
}

func supports(crop models.CropKind, crops ...models.CropKind) bool {
	for _, c := range crops {
		if c == crop {
			return true
		}
	}
	return false
}
