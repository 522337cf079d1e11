package config

import (
	"os"
	"strings"
	"sync"
	"testing"

	"sprayguard/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString(body); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func resetConfig() {
	instance = nil
	once = *new(sync.Once)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `server:
  addr: ":9090"
evaluation:
  diseases:
    - Sclerotinia
    - rust
  season: 2025
  workers: 8
  catalog_file: "catalog.yaml"
redis:
  addr: "localhost:6379"
  stream: "spray_assessments"
`)
	resetConfig()

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %v, want %v", cfg.Server.Addr, ":9090")
	}
	if cfg.Evaluation.Season != 2025 {
		t.Errorf("Evaluation.Season = %v, want %v", cfg.Evaluation.Season, 2025)
	}
	if cfg.Evaluation.Workers != 8 {
		t.Errorf("Evaluation.Workers = %v, want %v", cfg.Evaluation.Workers, 8)
	}
	if cfg.Evaluation.CatalogFile != "catalog.yaml" {
		t.Errorf("Evaluation.CatalogFile = %v, want %v", cfg.Evaluation.CatalogFile, "catalog.yaml")
	}
	if cfg.Redis.MaxLen != 10000 {
		t.Errorf("Redis.MaxLen = %v, want default %v", cfg.Redis.MaxLen, 10000)
	}

	got := cfg.EnabledDiseases()
	want := []models.Disease{models.DiseaseSclerotinia, models.DiseaseRust}
	if len(got) != len(want) {
		t.Fatalf("EnabledDiseases() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EnabledDiseases()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if Get() != cfg {
		t.Error("Get() did not return the loaded config")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `evaluation:
  diseases: [blackleg]
`)
	resetConfig()

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %v, want %v", cfg.Server.Addr, ":8080")
	}
	if cfg.Evaluation.Workers != 50 {
		t.Errorf("Evaluation.Workers = %v, want %v", cfg.Evaluation.Workers, 50)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")
	resetConfig()

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	resetConfig()

	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "no diseases",
			body:    "evaluation:\n  season: 2025\n",
			wantErr: "evaluation.diseases cannot be empty",
		},
		{
			name:    "unknown disease",
			body:    "evaluation:\n  diseases: [mildew]\n",
			wantErr: "evaluation.diseases",
		},
		{
			name:    "negative season",
			body:    "evaluation:\n  diseases: [rust]\n  season: -1\n",
			wantErr: "evaluation.season",
		},
		{
			name:    "negative workers",
			body:    "evaluation:\n  diseases: [rust]\n  workers: -4\n",
			wantErr: "evaluation.workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			resetConfig()

			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGet_PanicsWhenNotLoaded(t *testing.T) {
	resetConfig()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Get() did not panic when config not loaded")
		}
	}()
	Get()
}
