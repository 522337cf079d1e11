package detector

import (
	"testing"

	"sprayguard/internal/models"
)

// step raises one predictor of a snapshot towards higher disease pressure
type step struct {
	name  string
	raise func(w models.WeatherSnapshot) models.WeatherSnapshot
}

var weatherSteps = []step{
	{"humidity", func(w models.WeatherSnapshot) models.WeatherSnapshot { w.RelativeHumidity += 5; return w }},
	{"rainfall", func(w models.WeatherSnapshot) models.WeatherSnapshot { w.RainfallMM += 5; return w }},
	{"leaf wetness", func(w models.WeatherSnapshot) models.WeatherSnapshot { w.LeafWetnessHours += 4; return w }},
	{"rain days", func(w models.WeatherSnapshot) models.WeatherSnapshot {
		if w.RainDaysLastWeek < 7 {
			w.RainDaysLastWeek++
		}
		return w
	}},
	{"more recent rain", func(w models.WeatherSnapshot) models.WeatherSnapshot {
		if w.DaysSinceRain > 0 {
			w.DaysSinceRain--
		}
		return w
	}},
}

func weatherGrid() []models.WeatherSnapshot {
	var grid []models.WeatherSnapshot
	for _, rh := range []float64{40, 70, 80, 85, 90} {
		for _, rain := range []float64{0, 2, 5, 10, 30, 50} {
			for _, lw := range []float64{0, 20, 24, 40} {
				for _, dsr := range []int{0, 2, 3, 5, 10} {
					grid = append(grid, models.WeatherSnapshot{
						TemperatureC:     18,
						RelativeHumidity: rh,
						RainfallMM:       rain,
						LeafWetnessHours: lw,
						DaysSinceRain:    dsr,
						RainDaysLastWeek: dsr % 7,
					})
				}
			}
		}
	}
	return grid
}

func TestScorersMonotonicInWeather(t *testing.T) {
	cases := []struct {
		scorer Scorer
		crop   models.CropContext
	}{
		{RustScorer{}, wheat("Z39", false)},
		{SeptoriaScorer{}, wheat("Z39", false)},
		{SclerotiniaScorer{}, canola("50% Flower", "")},
		{BlacklegScorer{}, canola("3-leaf", "S")},
	}

	for _, c := range cases {
		for _, w := range weatherGrid() {
			base := c.scorer.Score(w, c.crop, models.MoAUsage{})
			for _, s := range weatherSteps {
				raised := c.scorer.Score(s.raise(w), c.crop, models.MoAUsage{})
				if raised.Tier.Rank() < base.Tier.Rank() {
					t.Errorf("%s: raising %s on %+v lowered tier %v -> %v",
						c.scorer.Disease(), s.name, w, base.Tier, raised.Tier)
				}
			}
		}
	}
}

func TestScorersMonotonicInCropAndTreatment(t *testing.T) {
	w := models.WeatherSnapshot{TemperatureC: 18, RelativeHumidity: 85, RainfallMM: 10, LeafWetnessHours: 24, DaysSinceRain: 2}

	for _, s := range []Scorer{RustScorer{}, SeptoriaScorer{}} {
		resistant := s.Score(w, wheat("Z39", true), models.MoAUsage{})
		susceptible := s.Score(w, wheat("Z39", false), models.MoAUsage{})
		if susceptible.Tier.Rank() < resistant.Tier.Rank() {
			t.Errorf("%s: losing resistance lowered tier %v -> %v", s.Disease(), resistant.Tier, susceptible.Tier)
		}

		offStage := s.Score(w, wheat("Z21", false), models.MoAUsage{})
		if susceptible.Tier.Rank() < offStage.Tier.Rank() {
			t.Errorf("%s: susceptible stage lowered tier %v -> %v", s.Disease(), offStage.Tier, susceptible.Tier)
		}

		treated := s.Score(w, wheat("Z39", false), models.MoAUsage{PriorApplied: true, SeedTreated: true})
		if treated.Tier.Rank() > susceptible.Tier.Rank() {
			t.Errorf("%s: treatment raised tier %v -> %v", s.Disease(), susceptible.Tier, treated.Tier)
		}
	}

	resistant := BlacklegScorer{}.Score(w, canola("3-leaf", "R"), models.MoAUsage{})
	susceptible := BlacklegScorer{}.Score(w, canola("3-leaf", "S"), models.MoAUsage{})
	if susceptible.Tier.Rank() < resistant.Tier.Rank() {
		t.Errorf("blackleg: susceptible rating lowered tier %v -> %v", resistant.Tier, susceptible.Tier)
	}
}
