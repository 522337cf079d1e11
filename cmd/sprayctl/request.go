package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sprayguard/internal/engine"
	"sprayguard/internal/weather"
)

// requestFile is the YAML form of an assessment request. A monthly block,
// when present, replaces the weather block.
type requestFile struct {
	Paddock        string `yaml:"paddock"`
	engine.Request `yaml:",inline"`
	Monthly        *monthlyWeather `yaml:"monthly"`
}

type monthlyWeather struct {
	Readings         []weather.MonthlyReading `yaml:"readings"`
	LeafWetnessHours float64                  `yaml:"leaf_wetness_hours"`
	DaysSinceRain    int                      `yaml:"days_since_rain"`
	RainDaysLastWeek int                      `yaml:"rain_days_last_week"`
}

func loadRequest(path string) (string, engine.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", engine.Request{}, fmt.Errorf("failed to read request file %s: %w", path, err)
	}
	return parseRequest(data)
}

func parseRequest(data []byte) (string, engine.Request, error) {
	var f requestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", engine.Request{}, fmt.Errorf("failed to parse request: %w", err)
	}

	if f.Monthly != nil {
		snapshot, err := weather.FromMonthly(f.Monthly.Readings, f.Monthly.LeafWetnessHours,
			f.Monthly.DaysSinceRain, f.Monthly.RainDaysLastWeek)
		if err != nil {
			return "", engine.Request{}, err
		}
		f.Request.Weather = snapshot
	}

	return f.Paddock, f.Request, nil
}
