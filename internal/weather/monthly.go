package weather

import (
	"fmt"

	"sprayguard/internal/models"
)

// MonthlyReading is a manually entered month of observations
type MonthlyReading struct {
	Month            string  `json:"month" yaml:"month"`
	RainfallMM       float64 `json:"rainfall_mm" yaml:"rainfall_mm"`
	TemperatureC     float64 `json:"temperature_c" yaml:"temperature_c"`
	RelativeHumidity float64 `json:"relative_humidity" yaml:"relative_humidity"`
}

// FromMonthly aggregates monthly readings into a snapshot: rainfall is
// summed, temperature and humidity are averaged. The indicators that monthly
// records cannot provide are passed in directly.
func FromMonthly(readings []MonthlyReading, leafWetnessHours float64, daysSinceRain, rainDaysLastWeek int) (models.WeatherSnapshot, error) {
	if len(readings) == 0 {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: no monthly readings", models.ErrInvalidWeather)
	}

	var rain, temp, rh float64
	for _, r := range readings {
		rain += r.RainfallMM
		temp += r.TemperatureC
		rh += r.RelativeHumidity
	}
	n := float64(len(readings))

	snapshot := models.WeatherSnapshot{
		TemperatureC:     temp / n,
		RelativeHumidity: rh / n,
		RainfallMM:       rain,
		LeafWetnessHours: leafWetnessHours,
		DaysSinceRain:    daysSinceRain,
		RainDaysLastWeek: rainDaysLastWeek,
	}
	if err := snapshot.Validate(); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return snapshot, nil
}
