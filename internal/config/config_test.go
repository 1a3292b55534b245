package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sample_sfpd_incident_all.csv", cfg.InputPath)
	assert.Equal(t, ',', cfg.InputDelimiter)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "Days.png", cfg.DaysChartFile)
	assert.Equal(t, "Type.png", cfg.CategoryChartFile)
	assert.Equal(t, "file_sf.geojson", cfg.GeoJSONFile)
	assert.Equal(t, "San Francisco", cfg.ChartRegion)
	assert.Equal(t, "2003", cfg.ChartYear)
	assert.False(t, cfg.GeoJSONNumericCoords)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "incident-features", cfg.KafkaTopic)
	assert.Equal(t, 50, cfg.BatchSize)

	assert.Equal(t, "Days.png", cfg.DaysChartPath())
	assert.Equal(t, "Type.png", cfg.CategoryChartPath())
	assert.Equal(t, "file_sf.geojson", cfg.GeoJSONPath())
	assert.Equal(t, []string{"Days.png", "Type.png", "file_sf.geojson"}, cfg.ArtifactFiles())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("INPUT_PATH", "/data/incidents.tsv")
	t.Setenv("INPUT_DELIMITER", "\t")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("DAYS_CHART_FILE", "days.svg")
	t.Setenv("CATEGORY_CHART_FILE", "categories.svg")
	t.Setenv("GEOJSON_FILE", "incidents.geojson")
	t.Setenv("CHART_REGION", "Oakland")
	t.Setenv("CHART_YEAR", "2010")
	t.Setenv("GEOJSON_NUMERIC_COORDS", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/incidentviz.prom")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "features")
	t.Setenv("BATCH_SIZE", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/incidents.tsv", cfg.InputPath)
	assert.Equal(t, '\t', cfg.InputDelimiter)
	assert.Equal(t, "Oakland", cfg.ChartRegion)
	assert.Equal(t, "2010", cfg.ChartYear)
	assert.True(t, cfg.GeoJSONNumericCoords)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "/var/lib/node_exporter/incidentviz.prom", cfg.MetricsTextfile)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "features", cfg.KafkaTopic)
	assert.Equal(t, 100, cfg.BatchSize)

	assert.Equal(t, filepath.Join("/tmp/out", "days.svg"), cfg.DaysChartPath())
	assert.Equal(t, filepath.Join("/tmp/out", "categories.svg"), cfg.CategoryChartPath())
	assert.Equal(t, filepath.Join("/tmp/out", "incidents.geojson"), cfg.GeoJSONPath())
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"multi-character delimiter", "INPUT_DELIMITER", ";;", "INPUT_DELIMITER"},
		{"quote delimiter", "INPUT_DELIMITER", `"`, "INPUT_DELIMITER"},
		{"newline delimiter", "INPUT_DELIMITER", "\n", "INPUT_DELIMITER"},
		{"numeric coords not a bool", "GEOJSON_NUMERIC_COORDS", "maybe", "GEOJSON_NUMERIC_COORDS"},
		{"chart file with directory", "DAYS_CHART_FILE", "charts/Days.png", "DAYS_CHART_FILE"},
		{"geojson file is parent dir", "GEOJSON_FILE", "..", "GEOJSON_FILE"},
		{"geojson file with directory", "GEOJSON_FILE", "../file_sf.geojson", "GEOJSON_FILE"},
		{"shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration", "SHUTDOWN_TIMEOUT"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s", "SHUTDOWN_TIMEOUT"},
		{"zero batch size", "BATCH_SIZE", "0", "BATCH_SIZE"},
		{"batch size too large", "BATCH_SIZE", "9999", "BATCH_SIZE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
