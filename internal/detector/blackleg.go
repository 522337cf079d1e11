package detector

import (
	"strings"

	"sprayguard/internal/models"
)

// Blackleg thresholds. Spore release drives the tier only once the crop is
// at a susceptible seedling stage.
const (
	BlacklegSporeRainMM         = 2.0
	BlacklegSporeHumidity       = 80.0
	BlacklegSporeTempMin        = 10.0
	BlacklegSporeTempMax        = 20.0
	BlacklegSporeHighPoints     = 2.0
	BlacklegSporeModeratePoints = 1.0

	BlacklegStagePoints       = 2.0
	BlacklegSusceptiblePoints = 1.0
)

var blacklegStages = []string{"2-leaf", "3-leaf", "4-leaf"}

// susceptibleRatings need a fungicide when spore pressure is high
var susceptibleRatings = map[string]bool{"S": true, "MS": true, "MRMS": true, "VS": true}

var blacklegRecommendations = map[models.RiskTier]string{
	models.RiskHigh:     "Apply fungicide now",
	models.RiskModerate: "Monitor closely or apply if yield potential is high",
	models.RiskLow:      "Fungicide not required yet",
}

// BlacklegScorer models blackleg in canola seedlings
type BlacklegScorer struct{}

func (BlacklegScorer) Disease() models.Disease { return models.DiseaseBlackleg }

func (BlacklegScorer) Supports(crop models.CropKind) bool {
	return supports(crop, models.CropCanola)
}

func (BlacklegScorer) Score(w models.WeatherSnapshot, c models.CropContext, u models.MoAUsage) models.RiskAssessment {
	spore := 0.0
	if w.RainfallMM >= BlacklegSporeRainMM {
		spore++
	}
	if w.RelativeHumidity >= BlacklegSporeHumidity {
		spore++
	}
	if within(w.TemperatureC, BlacklegSporeTempMin, BlacklegSporeTempMax) {
		spore++
	}
	sporeRisk := tierFor(spore, BlacklegSporeHighPoints, BlacklegSporeModeratePoints)

	rating, group := resolveRating(c)
	susceptibleStage := stageIn(c, blacklegStages...)
	susceptible := susceptibleRatings[rating]

	score := spore
	if susceptibleStage {
		score += BlacklegStagePoints
	}
	if susceptible {
		score += BlacklegSusceptiblePoints
	}

	tier := models.RiskLow
	if sporeRisk == models.RiskHigh && susceptibleStage {
		tier = models.RiskModerate
		if susceptible {
			tier = models.RiskHigh
		}
	}

	return models.RiskAssessment{
		Disease:        models.DiseaseBlackleg,
		Score:          score,
		Tier:           tier,
		Recommendation: blacklegRecommendations[tier],
		ModelVersion:   ModelVersion,
		Blackleg: &models.BlacklegDetail{
			SporeRisk:        sporeRisk,
			ResistanceRating: rating,
			ResistanceGroup:  group,
		},
	}
}

// resolveRating prefers an explicit rating and falls back to the variety
// table. An unknown rating is scored as very susceptible.
func resolveRating(c models.CropContext) (rating, group string) {
	v := LookupVariety(c.Variety)
	if strings.TrimSpace(c.ResistanceRating) == "" {
		return v.Rating, v.Group
	}
	rating, ok := models.NormalizeRating(c.ResistanceRating)
	if !ok {
		rating = "VS"
	}
	return rating, v.Group
}
