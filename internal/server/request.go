package server

import (
	"fmt"
	"strings"

	"sprayguard/internal/engine"
	"sprayguard/internal/models"
)

// WeatherInput is the wire form of a weather snapshot. Every reading is
// required; Error carries a fetch-failure marker from the weather source.
type WeatherInput struct {
	TemperatureC     *float64 `json:"temperature_c"`
	RelativeHumidity *float64 `json:"relative_humidity"`
	RainfallMM       *float64 `json:"rainfall_mm"`
	LeafWetnessHours *float64 `json:"leaf_wetness_hours"`
	DaysSinceRain    *int     `json:"days_since_rain"`
	RainDaysLastWeek *int     `json:"rain_days_last_week"`
	Error            string   `json:"error,omitempty"`
}

// AssessRequest is the body of POST /assess
type AssessRequest struct {
	Paddock                       string                 `json:"paddock"`
	Disease                       models.Disease         `json:"disease"`
	Weather                       WeatherInput           `json:"weather"`
	Crop                          models.CropContext     `json:"crop"`
	Treatments                    models.TreatmentRecord `json:"treatments"`
	PlannedProduct                string                 `json:"planned_product,omitempty"`
	SameCropLastTwoYears          bool                   `json:"same_crop_last_two_years"`
	SameResistanceGroupAsLastYear bool                   `json:"same_resistance_group_as_last_year"`
	DiseaseVisible                bool                   `json:"disease_visible"`
	RainForecastHours             float64                `json:"rain_forecast_hours"`
	Economics                     *models.EconomicInputs `json:"economics,omitempty"`
}

// Snapshot converts the input into a fully populated snapshot
func (w WeatherInput) Snapshot() (models.WeatherSnapshot, error) {
	if strings.TrimSpace(w.Error) != "" {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: %s", models.ErrWeatherUnavailable, w.Error)
	}

	var missing []string
	if w.TemperatureC == nil {
		missing = append(missing, "temperature_c")
	}
	if w.RelativeHumidity == nil {
		missing = append(missing, "relative_humidity")
	}
	if w.RainfallMM == nil {
		missing = append(missing, "rainfall_mm")
	}
	if w.LeafWetnessHours == nil {
		missing = append(missing, "leaf_wetness_hours")
	}
	if w.DaysSinceRain == nil {
		missing = append(missing, "days_since_rain")
	}
	if w.RainDaysLastWeek == nil {
		missing = append(missing, "rain_days_last_week")
	}
	if len(missing) > 0 {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: missing %s", models.ErrInvalidWeather, strings.Join(missing, ", "))
	}

	return models.WeatherSnapshot{
		TemperatureC:     *w.TemperatureC,
		RelativeHumidity: *w.RelativeHumidity,
		RainfallMM:       *w.RainfallMM,
		LeafWetnessHours: *w.LeafWetnessHours,
		DaysSinceRain:    *w.DaysSinceRain,
		RainDaysLastWeek: *w.RainDaysLastWeek,
	}, nil
}

// EngineRequest converts the body into an engine request
func (r AssessRequest) EngineRequest() (engine.Request, error) {
	snapshot, err := r.Weather.Snapshot()
	if err != nil {
		return engine.Request{}, err
	}
	return engine.Request{
		Disease:                       r.Disease,
		Weather:                       snapshot,
		Crop:                          r.Crop,
		Treatments:                    r.Treatments,
		PlannedProduct:                r.PlannedProduct,
		SameCropLastTwoYears:          r.SameCropLastTwoYears,
		SameResistanceGroupAsLastYear: r.SameResistanceGroupAsLastYear,
		DiseaseVisible:                r.DiseaseVisible,
		RainForecastHours:             r.RainForecastHours,
		Economics:                     r.Economics,
	}, nil
}
