package config

import (
	"testing"
)

func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DATABASE_DSN"} {
		t.Setenv(key, "")
	}
}

func TestGetDatabaseDSN_FromEnvVars(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_USER", "agronomist")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_HOST", "db.farm.local")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "paddocks")

	dsn := GetDatabaseDSN()
	expected := "agronomist:s3cret@tcp(db.farm.local:3307)/paddocks?parseTime=true"

	if dsn != expected {
		t.Errorf("GetDatabaseDSN() = %v, want %v", dsn, expected)
	}
}

func TestGetDatabaseDSN_FromDatabaseDSNEnv(t *testing.T) {
	clearDBEnv(t)
	custom := "custom:dsn@tcp(custom:3306)/customdb?parseTime=true"
	t.Setenv("DATABASE_DSN", custom)

	if dsn := GetDatabaseDSN(); dsn != custom {
		t.Errorf("GetDatabaseDSN() = %v, want %v", dsn, custom)
	}
}

func TestGetDatabaseDSN_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "nothing set", env: nil},
		{name: "partial DB vars", env: map[string]string{"DB_USER": "agronomist", "DB_PASSWORD": "s3cret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearDBEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if dsn := GetDatabaseDSN(); dsn != defaultDSN {
				t.Errorf("GetDatabaseDSN() = %v, want %v", dsn, defaultDSN)
			}
		})
	}
}
