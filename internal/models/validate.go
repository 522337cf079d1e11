package models

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var zadoksPattern = regexp.MustCompile(`^[Zz](\d{2})\b`)

type namedValue struct {
	name  string
	value float64
}

// CanolaStages is the growth-stage vocabulary accepted for canola
var CanolaStages = []string{
	"2-leaf", "3-leaf", "4-leaf", "5-leaf", "6-leaf", "7-leaf", "8-leaf",
	"Bolting", "10% Flower", "20% Flower", "50% Flower", "Petal Drop",
}

// ResistanceRatings is the blackleg rating vocabulary, most resistant first
var ResistanceRatings = []string{"R", "MR", "MRMS", "MS", "S", "VS"}

// NormalizeRating returns the canonical form of a blackleg rating and whether
// it belongs to ResistanceRatings
func NormalizeRating(s string) (string, bool) {
	rating := strings.ToUpper(strings.TrimSpace(s))
	for _, r := range ResistanceRatings {
		if rating == r {
			return r, true
		}
	}
	return rating, false
}

// ParseCropKind resolves a crop name case-insensitively
func ParseCropKind(s string) (CropKind, error) {
	for _, c := range Crops {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown crop %q", ErrInvalidCrop, s)
}

// ParseDisease resolves a disease name case-insensitively
func ParseDisease(s string) (Disease, error) {
	for _, d := range Diseases {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown disease %q", ErrUnsupportedPairing, s)
}

// Validate rejects non-finite or out-of-range indicators. Temperature may be negative.
func (w WeatherSnapshot) Validate() error {
	values := []namedValue{
		{"temperature", w.TemperatureC},
		{"relative humidity", w.RelativeHumidity},
		{"rainfall", w.RainfallMM},
		{"leaf wetness", w.LeafWetnessHours},
	}
	for _, nv := range values {
		if math.IsNaN(nv.value) || math.IsInf(nv.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidWeather, nv.name)
		}
	}

	if w.RelativeHumidity < 0 || w.RelativeHumidity > 100 {
		return fmt.Errorf("%w: relative humidity %.1f outside 0-100", ErrInvalidWeather, w.RelativeHumidity)
	}
	if w.RainfallMM < 0 {
		return fmt.Errorf("%w: rainfall %.1f is negative", ErrInvalidWeather, w.RainfallMM)
	}
	if w.LeafWetnessHours < 0 {
		return fmt.Errorf("%w: leaf wetness %.1f is negative", ErrInvalidWeather, w.LeafWetnessHours)
	}
	if w.DaysSinceRain < 0 {
		return fmt.Errorf("%w: days since rain %d is negative", ErrInvalidWeather, w.DaysSinceRain)
	}
	if w.RainDaysLastWeek < 0 || w.RainDaysLastWeek > 7 {
		return fmt.Errorf("%w: rain days %d outside 0-7", ErrInvalidWeather, w.RainDaysLastWeek)
	}
	return nil
}

// Validate checks the crop is known, the growth stage belongs to its vocabulary
// and any canola resistance rating is a known one
func (c CropContext) Validate() error {
	crop, err := ParseCropKind(string(c.Crop))
	if err != nil {
		return err
	}
	stage := strings.TrimSpace(c.GrowthStage)
	if stage == "" {
		return fmt.Errorf("%w: growth stage is required", ErrInvalidCrop)
	}

	if crop.IsCereal() {
		if !zadoksPattern.MatchString(stage) {
			return fmt.Errorf("%w: %s growth stage %q is not a Zadoks code", ErrInvalidCrop, crop, stage)
		}
		return nil
	}

	if zadoksPattern.MatchString(stage) {
		return fmt.Errorf("%w: Zadoks stage %q given for %s", ErrInvalidCrop, stage, crop)
	}
	known := false
	for _, s := range CanolaStages {
		if strings.EqualFold(stage, s) {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: unknown %s growth stage %q", ErrInvalidCrop, crop, stage)
	}

	if strings.TrimSpace(c.ResistanceRating) != "" {
		if _, ok := NormalizeRating(c.ResistanceRating); !ok {
			return fmt.Errorf("%w: resistance rating %q is not one of %s", ErrInvalidCrop, c.ResistanceRating, strings.Join(ResistanceRatings, ", "))
		}
	}
	return nil
}

// StageCode normalises the growth stage for comparison: "Z39" for cereals,
// lower-case trimmed text otherwise.
func (c CropContext) StageCode() string {
	stage := strings.TrimSpace(c.GrowthStage)
	if m := zadoksPattern.FindStringSubmatch(stage); m != nil {
		return "Z" + m[1]
	}
	return strings.ToLower(stage)
}

// Validate rejects negative or non-finite costs. A zero grain price is rejected
// separately so callers can tell it apart.
func (e EconomicInputs) Validate() error {
	values := []namedValue{
		{"product cost", e.ProductCostPerHa},
		{"application cost", e.ApplicationCostPerHa},
		{"grain price", e.GrainPricePerTonne},
		{"yield potential", e.YieldPotentialTPerHa},
	}
	for _, nv := range values {
		if math.IsNaN(nv.value) || math.IsInf(nv.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidEconomics, nv.name)
		}
		if nv.value < 0 {
			return fmt.Errorf("%w: %s %.2f is negative", ErrInvalidEconomics, nv.name, nv.value)
		}
	}
	if e.GrainPricePerTonne == 0 {
		return ErrZeroGrainPrice
	}
	return nil
}
