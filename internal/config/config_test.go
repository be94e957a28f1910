package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/PH_Adm4/PH_Adm4_BgySubMuns.shp", cfg.ShapefilePath)
	assert.Equal(t, "data/barangay-centroids.csv", cfg.OutputPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsTextfile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SHAPEFILE_PATH", "/srv/gis/bgy.shp")
	t.Setenv("OUTPUT_PATH", "/srv/out/centroids.csv")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/centroids.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/gis/bgy.shp", cfg.ShapefilePath)
	assert.Equal(t, "/srv/out/centroids.csv", cfg.OutputPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/var/lib/node_exporter/centroids.prom", cfg.MetricsTextfile)
}

func TestLoad_LevelAndFormatAreCaseInsensitive(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "verbose")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoad_InvalidMetricsTextfile(t *testing.T) {
	t.Setenv("METRICS_TEXTFILE", "/tmp/metrics.txt")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "METRICS_TEXTFILE")
	assert.Contains(t, err.Error(), ".prom")
}

func TestLoad_ReportsEveryInvalidVariable(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "yaml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
