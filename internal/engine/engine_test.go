package engine

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprayguard/internal/catalog"
	"sprayguard/internal/models"
)

func rustRequest() Request {
	return Request{
		Disease: models.DiseaseRust,
		Weather: models.WeatherSnapshot{TemperatureC: 20, RelativeHumidity: 90, RainfallMM: 4, DaysSinceRain: 1},
		Crop: models.CropContext{
			Crop: models.CropWheat, Variety: "Scepter", GrowthStage: "Z39 - Flag Leaf", HasResistance: false,
		},
		Treatments: models.TreatmentRecord{SeedTreatment: "None", PriorFoliar: []string{"None"}},
	}
}

func hasWarning(result *models.RecommendationResult, fragment string) bool {
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, fragment) {
			return true
		}
	}
	return false
}

func TestEvaluate_RustHighRisk(t *testing.T) {
	result, err := New(nil).Evaluate(rustRequest())
	require.NoError(t, err)

	assert.Equal(t, models.RiskHigh, result.Risk.Tier)
	assert.Equal(t, 7.0, result.Risk.Score)
	assert.True(t, strings.HasPrefix(result.Risk.Recommendation, "Apply fungicide immediately"))
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, result.MoA.TotalSprays)
	assert.NotEmpty(t, result.Options)
	assert.False(t, result.NoCompliantOption)
	assert.Nil(t, result.Economics)
}

func TestEvaluate_SclerotiniaAfterSDHISeedTreatment(t *testing.T) {
	req := Request{
		Disease: models.DiseaseSclerotinia,
		Weather: models.WeatherSnapshot{
			TemperatureC: 17, RelativeHumidity: 88, RainfallMM: 8, LeafWetnessHours: 26, DaysSinceRain: 1, RainDaysLastWeek: 3,
		},
		Crop:       models.CropContext{Crop: models.CropCanola, Variety: "Hunter", GrowthStage: "50% Flower"},
		Treatments: models.TreatmentRecord{SeedTreatment: "Saltro (Group 7 - SDHI)", PriorFoliar: []string{"None"}},
	}

	result, err := New(nil).Evaluate(req)
	require.NoError(t, err)

	for _, opt := range result.Options {
		assert.False(t, opt.HasGroup(models.Group7), "%s carries Group 7", opt.Product)
	}
	assert.True(t, hasWarning(result, "consecutive SDHI applications may lead to resistance"))
	assert.False(t, hasWarning(result, "more than 2 fungicide sprays"))
	assert.True(t, result.MoA.SDHIUsed)
	assert.Equal(t, 1, result.MoA.TotalSprays)
}

func TestEvaluate_RustAfterSDHIFoliar(t *testing.T) {
	req := rustRequest()
	req.Treatments.PriorFoliar = []string{"Elatus Ace (Group 7+3 - SDHI+DMI)"}

	result, err := New(nil).Evaluate(req)
	require.NoError(t, err)

	var removed []string
	for _, r := range result.RemovedOptions {
		removed = append(removed, r.Product)
	}
	assert.ElementsMatch(t, []string{"Elatus Ace", "Trivapro"}, removed)
	for _, opt := range result.Options {
		assert.False(t, opt.HasGroup(models.Group7), "%s carries Group 7", opt.Product)
	}
	assert.True(t, result.MoA.SDHIUsed)
	assert.Equal(t, 2, result.MoA.TotalSprays)

	req.PlannedProduct = "Elatus Ace"
	result, err = New(nil).Evaluate(req)
	require.NoError(t, err)
	assert.True(t, hasWarning(result, "consecutive SDHI applications may lead to resistance"))
}

func TestEvaluate_BlacklegSeedling(t *testing.T) {
	req := Request{
		Disease: models.DiseaseBlackleg,
		Weather: models.WeatherSnapshot{TemperatureC: 15, RelativeHumidity: 85, RainfallMM: 5},
		Crop: models.CropContext{
			Crop: models.CropCanola, Variety: "Other", GrowthStage: "3-leaf", ResistanceRating: "S",
		},
	}

	result, err := New(nil).Evaluate(req)
	require.NoError(t, err)

	require.NotNil(t, result.Risk.Blackleg)
	assert.Equal(t, models.RiskHigh, result.Risk.Blackleg.SporeRisk)
	assert.Equal(t, models.RiskHigh, result.Risk.Tier)
	assert.Equal(t, "Apply fungicide now", result.Risk.Recommendation)
	assert.True(t, hasWarning(result, "variety rated S"))
}

func TestEvaluate_ThirdSprayWarns(t *testing.T) {
	req := rustRequest()
	req.Treatments.PriorFoliar = []string{"Tilt (Group 3 - DMI)", "Elatus Ace (Group 7+3 - SDHI+DMI)"}

	result, err := New(nil).Evaluate(req)
	require.NoError(t, err)

	assert.Equal(t, 3, result.MoA.TotalSprays)
	assert.True(t, hasWarning(result, "more than 2 fungicide sprays per season is not recommended"))
}

func TestEvaluate_Economics(t *testing.T) {
	req := rustRequest()
	req.Economics = &models.EconomicInputs{ProductCostPerHa: 20, ApplicationCostPerHa: 10, GrainPricePerTonne: 300}

	result, err := New(nil).Evaluate(req)
	require.NoError(t, err)

	require.NotNil(t, result.Economics)
	assert.Equal(t, 30.0, result.Economics.TotalCostPerHa)
	assert.Equal(t, 100.0, result.Economics.BreakEvenYieldKgPerHa)
	for _, opt := range result.Options {
		require.NotNil(t, opt.Economics, "%s has no economics", opt.Product)
	}
}

func TestEvaluate_ZeroGrainPriceRejected(t *testing.T) {
	req := rustRequest()
	req.Economics = &models.EconomicInputs{ProductCostPerHa: 20, ApplicationCostPerHa: 10}

	result, err := New(nil).Evaluate(req)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrZeroGrainPrice)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"humidity out of range", func(r *Request) { r.Weather.RelativeHumidity = 120 }, models.ErrInvalidWeather},
		{"NaN rainfall", func(r *Request) { r.Weather.RainfallMM = math.NaN() }, models.ErrInvalidWeather},
		{"canola stage on wheat", func(r *Request) { r.Crop.GrowthStage = "3-leaf" }, models.ErrInvalidCrop},
		{"septoria on canola", func(r *Request) {
			r.Disease = models.DiseaseSeptoria
			r.Crop = models.CropContext{Crop: models.CropCanola, GrowthStage: "4-leaf"}
		}, models.ErrUnsupportedPairing},
		{"unknown disease", func(r *Request) { r.Disease = "ergot" }, models.ErrUnsupportedPairing},
		{"unknown blackleg rating", func(r *Request) {
			r.Disease = models.DiseaseBlackleg
			r.Crop = models.CropContext{Crop: models.CropCanola, Variety: "DG Buller", GrowthStage: "3-leaf", ResistanceRating: "Susceptible"}
		}, models.ErrInvalidCrop},
		{"negative rain forecast", func(r *Request) { r.RainForecastHours = -1 }, models.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := rustRequest()
			tt.mutate(&req)

			result, err := New(nil).Evaluate(req)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestEvaluate_NoCatalogIsNotInvalidInput(t *testing.T) {
	c, err := catalog.New(map[models.Disease][]models.FungicideOption{
		models.DiseaseSeptoria: {{Product: "Prosaro", Activity: models.ActivityCurative}},
	})
	require.NoError(t, err)

	_, err = New(c).Evaluate(rustRequest())
	assert.True(t, errors.Is(err, models.ErrNoCatalog))
	assert.False(t, errors.Is(err, models.ErrInvalidInput))
}

func TestEvaluate_AllFilteredIsFlagged(t *testing.T) {
	c, err := catalog.New(map[models.Disease][]models.FungicideOption{
		models.DiseaseRust: {{Product: "Elatus Ace", Activity: models.ActivityProtectiveCurative}},
	})
	require.NoError(t, err)

	req := rustRequest()
	req.Treatments.SeedTreatment = "Saltro"

	result, err := New(c).Evaluate(req)
	require.NoError(t, err)
	assert.True(t, result.NoCompliantOption)
	assert.Empty(t, result.Options)
	assert.Equal(t, catalog.NoCompliantNotice, result.Notice)
}

func TestEvaluate_PlannedProductRotation(t *testing.T) {
	req := rustRequest()
	req.Treatments.PriorFoliar = []string{"Tilt"}
	req.PlannedProduct = "Prosaro"

	result, err := New(nil).Evaluate(req)
	require.NoError(t, err)
	assert.True(t, hasWarning(result, "previous application"))

	req.PlannedProduct = ""
	result, err = New(nil).Evaluate(req)
	require.NoError(t, err)
	assert.False(t, hasWarning(result, "previous application"))
}

func TestEvaluate_VisibleDiseaseRestrictsToCurative(t *testing.T) {
	req := rustRequest()
	req.DiseaseVisible = true

	result, err := New(nil).Evaluate(req)
	require.NoError(t, err)
	for _, opt := range result.Options {
		assert.True(t, opt.Activity.Curative(), "%s is not curative", opt.Product)
	}
	assert.True(t, hasWarning(result, "already visible"))
}

func TestEvaluate_DeterministicAndPure(t *testing.T) {
	e := New(nil)
	req := rustRequest()
	req.Treatments.PriorFoliar = []string{"Prosaro", "Opera"}
	req.Economics = &models.EconomicInputs{ProductCostPerHa: 22, ApplicationCostPerHa: 8, GrainPricePerTonne: 310}

	first, err := e.Evaluate(req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*models.RecommendationResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := e.Evaluate(req)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, first, r)
	}
	assert.Equal(t, []string{"Prosaro", "Opera"}, req.Treatments.PriorFoliar)
}
