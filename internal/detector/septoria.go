package detector

import "sprayguard/internal/models"

// Septoria tritici blotch thresholds
const (
	SeptoriaHumidityHigh     = 80.0
	SeptoriaHumidityModerate = 70.0

	SeptoriaRainHighMM     = 50.0
	SeptoriaRainModerateMM = 30.0

	SeptoriaWetnessHighHours     = 40.0
	SeptoriaWetnessModerateHours = 20.0

	SeptoriaRecentRainDays = 3

	SeptoriaNoResistancePoints   = 1.0
	SeptoriaPriorSprayReduction  = 1.0
	SeptoriaSeedTreatedReduction = 1.0

	SeptoriaHighThreshold     = 6.0
	SeptoriaModerateThreshold = 4.0
)

var septoriaRecommendations = map[models.RiskTier]string{
	models.RiskHigh:     "Spray immediately with an effective foliar fungicide.",
	models.RiskModerate: "Monitor and consider fungicide if wet conditions persist.",
	models.RiskLow:      "Monitor. No immediate action required.",
}

// SeptoriaScorer models septoria tritici blotch in wheat
type SeptoriaScorer struct{}

func (SeptoriaScorer) Disease() models.Disease { return models.DiseaseSeptoria }

func (SeptoriaScorer) Supports(crop models.CropKind) bool {
	return supports(crop, models.CropWheat)
}

func (SeptoriaScorer) Score(w models.WeatherSnapshot, c models.CropContext, u models.MoAUsage) models.RiskAssessment {
	score := atLeast(w.RelativeHumidity,
		band{SeptoriaHumidityHigh, 2},
		band{SeptoriaHumidityModerate, 1},
	)
	score += atLeast(w.RainfallMM,
		band{SeptoriaRainHighMM, 2},
		band{SeptoriaRainModerateMM, 1},
	)
	score += atLeast(w.LeafWetnessHours,
		band{SeptoriaWetnessHighHours, 2},
		band{SeptoriaWetnessModerateHours, 1},
	)
	if w.DaysSinceRain <= SeptoriaRecentRainDays {
		score++
	}

	switch {
	case stageIn(c, "Z39", "Z49"):
		score += 2
	case stageIn(c, "Z30", "Z31"):
		score++
	}

	if !c.HasResistance {
		score += SeptoriaNoResistancePoints
	}
	if u.PriorApplied {
		score -= SeptoriaPriorSprayReduction
	}
	if u.SeedTreated {
		score -= SeptoriaSeedTreatedReduction
	}

	tier := tierFor(score, SeptoriaHighThreshold, SeptoriaModerateThreshold)
	return models.RiskAssessment{
		Disease:        models.DiseaseSeptoria,
		Score:          score,
		Tier:           tier,
		Recommendation: septoriaRecommendations[tier],
		ModelVersion:   ModelVersion,
	}
}
