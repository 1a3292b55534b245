package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all run settings, populated from environment variables.
// Every variable is optional; the defaults reproduce a plain run over
// sample_sfpd_incident_all.csv in the working directory.
type Config struct {
	InputPath      string
	InputDelimiter rune

	OutputDir         string
	DaysChartFile     string
	CategoryChartFile string
	GeoJSONFile       string

	ChartRegion string
	ChartYear   string

	// GeoJSONNumericCoords switches the encoder from raw text coordinates to
	// numeric RFC 7946 output with a bounding box.
	GeoJSONNumericCoords bool

	LogLevel        string
	LogFormat       string
	MetricsTextfile string
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Kafka feature publishing, enabled when KafkaBrokers is non-empty.
	KafkaBrokers []string
	KafkaTopic   string
	BatchSize    int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	delimiter, err := parseDelimiter(sharedcfg.EnvOrDefault("INPUT_DELIMITER", ","))
	if err != nil {
		return nil, err
	}

	numeric, err := parseBool("GEOJSON_NUMERIC_COORDS", false)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		InputPath:      sharedcfg.EnvOrDefault("INPUT_PATH", "sample_sfpd_incident_all.csv"),
		InputDelimiter: delimiter,

		OutputDir:         sharedcfg.EnvOrDefault("OUTPUT_DIR", "."),
		DaysChartFile:     sharedcfg.EnvOrDefault("DAYS_CHART_FILE", "Days.png"),
		CategoryChartFile: sharedcfg.EnvOrDefault("CATEGORY_CHART_FILE", "Type.png"),
		GeoJSONFile:       sharedcfg.EnvOrDefault("GEOJSON_FILE", "file_sf.geojson"),

		ChartRegion: sharedcfg.EnvOrDefault("CHART_REGION", "San Francisco"),
		ChartYear:   sharedcfg.EnvOrDefault("CHART_YEAR", "2003"),

		GeoJSONNumericCoords: numeric,

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "incident-features"),
		BatchSize:    batchSize,
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}
	for name, file := range map[string]string{
		"DAYS_CHART_FILE":     cfg.DaysChartFile,
		"CATEGORY_CHART_FILE": cfg.CategoryChartFile,
		"GEOJSON_FILE":        cfg.GeoJSONFile,
	} {
		if file == "" || file == "." || file == ".." || filepath.Base(file) != file {
			return nil, errors.New(name + " must be a plain file name")
		}
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// KafkaEnabled reports whether exported features are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// DaysChartPath is the output path of the day-of-week line chart.
func (c *Config) DaysChartPath() string {
	return filepath.Join(c.OutputDir, c.DaysChartFile)
}

// CategoryChartPath is the output path of the category bar chart.
func (c *Config) CategoryChartPath() string {
	return filepath.Join(c.OutputDir, c.CategoryChartFile)
}

// GeoJSONPath is the output path of the feature collection.
func (c *Config) GeoJSONPath() string {
	return filepath.Join(c.OutputDir, c.GeoJSONFile)
}

// ArtifactFiles lists the file names written to OutputDir by a run.
func (c *Config) ArtifactFiles() []string {
	return []string{c.DaysChartFile, c.CategoryChartFile, c.GeoJSONFile}
}

func parseDelimiter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.New("INPUT_DELIMITER must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, errors.New("INPUT_DELIMITER is not a valid CSV delimiter")
	}
	return r, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New("invalid " + key)
	}
	return v, nil
}
