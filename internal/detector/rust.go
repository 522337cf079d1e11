package detector

import "sprayguard/internal/models"

// Rust thresholds
const (
	RustTempOptimalMin  = 15.0
	RustTempOptimalMax  = 25.0
	RustTempMarginalMin = 12.0
	RustTempMarginalMax = 30.0

	RustHumidityHigh     = 85.0
	RustHumidityModerate = 70.0

	RustStagePoints          = 2.0
	RustNoResistancePoints   = 1.0
	RustPriorSprayReduction  = 1.0
	RustSeedTreatedReduction = 1.0

	RustHighThreshold     = 6.0
	RustModerateThreshold = 4.0
)

var rustStages = []string{"Z30", "Z39", "Z49", "Z65"}

var rustRecommendations = map[models.RiskTier]string{
	models.RiskHigh:     "Apply fungicide immediately.",
	models.RiskModerate: "Monitor closely. Consider fungicide if conditions persist.",
	models.RiskLow:      "Low risk. Monitor and reassess later.",
}

// RustScorer models stripe and leaf rust on cereals
type RustScorer struct{}

func (RustScorer) Disease() models.Disease { return models.DiseaseRust }

func (RustScorer) Supports(crop models.CropKind) bool {
	return supports(crop, models.CropWheat, models.CropBarley, models.CropOats)
}

func (RustScorer) Score(w models.WeatherSnapshot, c models.CropContext, u models.MoAUsage) models.RiskAssessment {
	score := 0.0

	switch {
	case within(w.TemperatureC, RustTempOptimalMin, RustTempOptimalMax):
		score += 2
	case within(w.TemperatureC, RustTempMarginalMin, RustTempMarginalMax):
		score += 1
	}

	score += atLeast(w.RelativeHumidity,
		band{RustHumidityHigh, 2},
		band{RustHumidityModerate, 1},
	)

	if stageIn(c, rustStages...) {
		score += RustStagePoints
	}
	if !c.HasResistance {
		score += RustNoResistancePoints
	}
	if u.PriorApplied {
		score -= RustPriorSprayReduction
	}
	if u.SeedTreated {
		score -= RustSeedTreatedReduction
	}

	tier := tierFor(score, RustHighThreshold, RustModerateThreshold)
	return models.RiskAssessment{
		Disease:        models.DiseaseRust,
		Score:          score,
		Tier:           tier,
		Recommendation: rustRecommendations[tier],
		ModelVersion:   ModelVersion,
	}
}
