package engine

import (
	"fmt"
	"math"

	"sprayguard/internal/catalog"
	"sprayguard/internal/detector"
	"sprayguard/internal/economics"
	"sprayguard/internal/models"
	"sprayguard/internal/stewardship"
	"sprayguard/internal/treatment"
)

// Request is everything one evaluation needs
type Request struct {
	Disease                       models.Disease         `json:"disease" yaml:"disease"`
	Weather                       models.WeatherSnapshot `json:"weather" yaml:"weather"`
	Crop                          models.CropContext     `json:"crop" yaml:"crop"`
	Treatments                    models.TreatmentRecord `json:"treatments" yaml:"treatments"`
	// PlannedProduct is the product the grower intends to apply, if chosen
	PlannedProduct                string                 `json:"planned_product,omitempty" yaml:"planned_product"`
	SameCropLastTwoYears          bool                   `json:"same_crop_last_two_years" yaml:"same_crop_last_two_years"`
	SameResistanceGroupAsLastYear bool                   `json:"same_resistance_group_as_last_year" yaml:"same_resistance_group_as_last_year"`
	DiseaseVisible                bool                   `json:"disease_visible" yaml:"disease_visible"`
	RainForecastHours             float64                `json:"rain_forecast_hours" yaml:"rain_forecast_hours"`
	Economics                     *models.EconomicInputs `json:"economics,omitempty" yaml:"economics"`
}

// Engine evaluates requests against a fixed catalog. It holds no mutable
// state, so a single Engine serves concurrent callers.
type Engine struct {
	detector *detector.RiskDetector
	catalog  *catalog.Catalog
}

// New creates an engine over the given catalog, or the built-in one if nil
func New(c *catalog.Catalog) *Engine {
	if c == nil {
		c = catalog.Default()
	}
	return &Engine{
		detector: detector.NewRiskDetector(),
		catalog:  c,
	}
}

// Catalog returns the catalog the engine filters
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Validate checks a request without evaluating it and returns the
// normalised disease and crop
func (e *Engine) Validate(req Request) (models.Disease, models.CropKind, error) {
	disease, err := models.ParseDisease(string(req.Disease))
	if err != nil {
		return "", "", err
	}
	if err := req.Crop.Validate(); err != nil {
		return "", "", err
	}
	crop, _ := models.ParseCropKind(string(req.Crop.Crop))
	if err := e.detector.CheckPairing(disease, crop); err != nil {
		return "", "", err
	}
	if err := req.Weather.Validate(); err != nil {
		return "", "", err
	}
	if math.IsNaN(req.RainForecastHours) || math.IsInf(req.RainForecastHours, 0) || req.RainForecastHours < 0 {
		return "", "", fmt.Errorf("%w: rain forecast hours must be a non-negative number", models.ErrInvalidInput)
	}
	if req.Economics != nil {
		if err := req.Economics.Validate(); err != nil {
			return "", "", err
		}
	}
	return disease, crop, nil
}

// Evaluate validates the request, scores the disease, checks stewardship,
// filters the catalog and computes economics. Invalid input returns an error
// wrapping models.ErrInvalidInput and no partial result.
func (e *Engine) Evaluate(req Request) (*models.RecommendationResult, error) {
	disease, crop, err := e.Validate(req)
	if err != nil {
		return nil, err
	}
	cropCtx := req.Crop
	cropCtx.Crop = crop

	usage := treatment.Resolve(req.Treatments.SeedTreatment, req.Treatments.PriorFoliar...)

	risk, err := e.detector.Detect(disease, req.Weather, cropCtx, usage)
	if err != nil {
		return nil, err
	}

	options, err := e.catalog.Options(disease)
	if err != nil {
		return nil, err
	}

	current, planned := e.currentGroups(disease, req.PlannedProduct)
	rating := cropCtx.ResistanceRating
	if risk.Blackleg != nil {
		rating = risk.Blackleg.ResistanceRating
	}

	warnings := stewardship.Check(stewardship.Input{
		Crop:                          crop,
		Disease:                       disease,
		Usage:                         usage,
		CurrentGroups:                 current,
		Planned:                       planned,
		ResistanceRating:              rating,
		SameCropLastTwoYears:          req.SameCropLastTwoYears,
		SameResistanceGroupAsLastYear: req.SameResistanceGroupAsLastYear,
		DiseaseVisible:                req.DiseaseVisible,
		RainForecastHours:             req.RainForecastHours,
	})

	filtered := catalog.Filter(options, catalog.FilterInput{
		Usage:          usage,
		DiseaseVisible: req.DiseaseVisible,
	})

	result := &models.RecommendationResult{
		Disease:           disease,
		Crop:              crop,
		Risk:              risk,
		Options:           filtered.Options,
		RemovedOptions:    filtered.Removed,
		NoCompliantOption: filtered.NoCompliantOption,
		Notice:            filtered.Notice,
		Warnings:          warnings,
		MoA:               usage,
	}

	if req.Economics != nil {
		econ, err := economics.Evaluate(*req.Economics)
		if err != nil {
			return nil, err
		}
		result.Economics = &econ

		for i := range result.Options {
			optEcon, err := economics.ForOption(result.Options[i], *req.Economics)
			if err != nil {
				return nil, err
			}
			result.Options[i].Economics = &optEcon
		}
	}

	return result, nil
}

// currentGroups returns the MoA groups of the planned product when it
// resolves, otherwise the union of the disease's catalog groups
func (e *Engine) currentGroups(disease models.Disease, planned string) ([]models.MoAGroup, bool) {
	if !treatment.IsNone(planned) {
		if groups, ok := treatment.GroupsFor(planned); ok {
			return groups, true
		}
	}
	return e.catalog.Groups(disease), false
}
