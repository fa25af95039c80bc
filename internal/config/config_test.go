package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 2000, cfg.Cleaning.YearMin)
	assert.Equal(t, 2025, cfg.Cleaning.YearMax)
	assert.Equal(t, filepath.Join("data", "raw", "all-vehicles-model.csv"), cfg.VehiclePath())
	assert.Equal(t, filepath.Join("data", "raw", "sport-car-price.csv"), cfg.SportsPath())
	require.NoError(t, cfg.validate())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("AUTOTRENDS_CONFIG", filepath.Join(t.TempDir(), "nonexistent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
cleaning:
  year_min: 2010
classifier:
  brands:
    - Lotus
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("AUTOTRENDS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2010, cfg.Cleaning.YearMin)
	// Untouched values keep their defaults.
	assert.Equal(t, 2025, cfg.Cleaning.YearMax)
	assert.Equal(t, []string{"Lotus"}, cfg.Classifier.Brands)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv("AUTOTRENDS_CONFIG", path)
	t.Setenv("AUTOTRENDS_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad port", content: "server:\n  port: 0\n"},
		{name: "inverted year range", content: "cleaning:\n  year_min: 2030\n  year_max: 2020\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			t.Setenv("AUTOTRENDS_CONFIG", path)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))
	t.Setenv("AUTOTRENDS_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}
