package detector

import "sprayguard/internal/models"

// Sclerotinia stem rot thresholds
const (
	SclerotiniaTempHigh     = 16.0
	SclerotiniaTempModerate = 13.0

	SclerotiniaHumidityHigh     = 90.0
	SclerotiniaHumidityModerate = 80.0

	SclerotiniaRainHighMM     = 10.0
	SclerotiniaRainModerateMM = 5.0

	SclerotiniaRecentRainDays = 2
	SclerotiniaRainWindowDays = 5

	SclerotiniaWetnessHours = 24.0
	SclerotiniaRainDays     = 3

	SclerotiniaPriorSprayReduction  = 1.0
	SclerotiniaSeedTreatedReduction = 0.5

	SclerotiniaHighThreshold     = 5.0
	SclerotiniaModerateThreshold = 3.0
)

var sclerotiniaStages = []string{"50% flower", "petal drop"}

var sclerotiniaRecommendations = map[models.RiskTier]string{
	models.RiskHigh:     "Spray immediately.",
	models.RiskModerate: "Consider a spray soon.",
	models.RiskLow:      "Continue to monitor.",
}

// SclerotiniaScorer models sclerotinia stem rot in canola
type SclerotiniaScorer struct{}

func (SclerotiniaScorer) Disease() models.Disease { return models.DiseaseSclerotinia }

func (SclerotiniaScorer) Supports(crop models.CropKind) bool {
	return supports(crop, models.CropCanola)
}

func (SclerotiniaScorer) Score(w models.WeatherSnapshot, c models.CropContext, u models.MoAUsage) models.RiskAssessment {
	score := atLeast(w.TemperatureC,
		band{SclerotiniaTempHigh, 2},
		band{SclerotiniaTempModerate, 1},
	)
	score += atLeast(w.RelativeHumidity,
		band{SclerotiniaHumidityHigh, 2},
		band{SclerotiniaHumidityModerate, 1},
	)
	score += atLeast(w.RainfallMM,
		band{SclerotiniaRainHighMM, 2},
		band{SclerotiniaRainModerateMM, 1},
	)
	score += atMost(float64(w.DaysSinceRain),
		band{SclerotiniaRecentRainDays, 1},
		band{SclerotiniaRainWindowDays, 0.5},
	)
	if w.LeafWetnessHours >= SclerotiniaWetnessHours {
		score++
	}
	if w.RainDaysLastWeek >= SclerotiniaRainDays {
		score++
	}

	if stageIn(c, sclerotiniaStages...) {
		score++
	}

	if u.PriorApplied {
		score -= SclerotiniaPriorSprayReduction
	}
	if u.SeedTreated {
		score -= SclerotiniaSeedTreatedReduction
	}

	tier := tierFor(score, SclerotiniaHighThreshold, SclerotiniaModerateThreshold)
	return models.RiskAssessment{
		Disease:        models.DiseaseSclerotinia,
		Score:          score,
		Tier:           tier,
		Recommendation: sclerotiniaRecommendations[tier],
		ModelVersion:   ModelVersion,
	}
}
