package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sprayguard/internal/models"
)

// File is the YAML layout of a catalog override
type File struct {
	Catalogs map[models.Disease][]models.FungicideOption `yaml:"catalogs"`
}

// Load reads a catalog override from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Catalogs) == 0 {
		return nil, fmt.Errorf("catalog file has no catalogs")
	}
	return New(f.Catalogs)
}

// LoadOrDefault loads the override at path, or returns the built-in catalog
// when path is empty
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
