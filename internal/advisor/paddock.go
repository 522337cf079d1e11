package advisor

import (
	"time"

	"sprayguard/internal/engine"
	"sprayguard/internal/models"
)

// PaddockRequest builds the evaluation request for a stored paddock from its
// latest weather observation and this season's spray records
func PaddockRequest(p models.Paddock, weather models.WeatherSnapshot, sprays []models.SprayRecord) engine.Request {
	prior := make([]string, 0, len(sprays))
	for _, s := range sprays {
		prior = append(prior, s.Product)
	}
	if len(prior) == 0 {
		prior = append(prior, "None")
	}

	return engine.Request{
		Disease: p.Disease,
		Weather: weather,
		Crop: models.CropContext{
			Crop:             p.Crop,
			Variety:          p.Variety,
			GrowthStage:      p.GrowthStage,
			HasResistance:    p.HasResistance,
			ResistanceRating: p.ResistanceRating,
		},
		Treatments: models.TreatmentRecord{
			SeedTreatment: p.SeedTreatment,
			PriorFoliar:   prior,
		},
		SameCropLastTwoYears:          p.SameCropLastTwoYears,
		SameResistanceGroupAsLastYear: p.SameResistanceGroupAsLastYear,
	}
}

// Season returns configured when set, otherwise the calendar year of now
func Season(configured int, now time.Time) int {
	if configured > 0 {
		return configured
	}
	return now.Year()
}
