package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"sprayguard/internal/models"
)

var (
	instance *Config
	once     sync.Once
)

// Config is the YAML configuration shared by the commands
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Evaluation struct {
		Diseases    []string `yaml:"diseases"`
		Season      int      `yaml:"season"`
		Workers     int      `yaml:"workers"`
		CatalogFile string   `yaml:"catalog_file"`
	} `yaml:"evaluation"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Stream   string `yaml:"stream"`
		MaxLen   int64  `yaml:"max_len"`
	} `yaml:"redis"`
}

func Load(configPath string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}

		data, readErr := os.ReadFile(configPath)
		if readErr != nil {
			err = fmt.Errorf("failed to read config file %s: %w", configPath, readErr)
			return
		}

		if parseErr := yaml.Unmarshal(data, instance); parseErr != nil {
			err = fmt.Errorf("failed to parse config: %w", parseErr)
			return
		}

		instance.applyDefaults()

		if validateErr := instance.validate(); validateErr != nil {
			err = validateErr
			return
		}
	})

	return instance, err
}

func Get() *Config {
	if instance == nil {
		panic("config not loaded - call config.Load() first")
	}
	return instance
}

// EnabledDiseases returns the configured diseases in canonical form
func (c *Config) EnabledDiseases() []models.Disease {
	out := make([]models.Disease, 0, len(c.Evaluation.Diseases))
	for _, name := range c.Evaluation.Diseases {
		if d, err := models.ParseDisease(name); err == nil {
			out = append(out, d)
		}
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Evaluation.Workers == 0 {
		c.Evaluation.Workers = 50
	}
	if c.Redis.MaxLen == 0 {
		c.Redis.MaxLen = 10000
	}
}

func (c *Config) validate() error {
	if len(c.Evaluation.Diseases) == 0 {
		return fmt.Errorf("evaluation.diseases cannot be empty")
	}
	for _, name := range c.Evaluation.Diseases {
		if _, err := models.ParseDisease(name); err != nil {
			return fmt.Errorf("evaluation.diseases: %w", err)
		}
	}
	if c.Evaluation.Season < 0 {
		return fmt.Errorf("evaluation.season cannot be negative")
	}
	if c.Evaluation.Workers < 0 {
		return fmt.Errorf("evaluation.workers cannot be negative")
	}
	return nil
}
