package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of every validation error returned to callers
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrInvalidWeather     = fmt.Errorf("invalid weather snapshot: %w", ErrInvalidInput)
	ErrInvalidCrop        = fmt.Errorf("invalid crop context: %w", ErrInvalidInput)
	ErrUnsupportedPairing = fmt.Errorf("unsupported crop/disease pairing: %w", ErrInvalidInput)
	ErrInvalidEconomics   = fmt.Errorf("invalid economic inputs: %w", ErrInvalidInput)
	ErrZeroGrainPrice     = fmt.Errorf("grain price must be greater than zero: %w", ErrInvalidEconomics)
)

// ErrWeatherUnavailable marks a snapshot that arrived with a fetch-failure marker
var ErrWeatherUnavailable = errors.New("weather data unavailable")

// ErrNoCatalog means no fungicide catalog is configured for a disease
var ErrNoCatalog = errors.New("no fungicide catalog for disease")
