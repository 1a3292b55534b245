// Command incidentviz reads an SFPD incident CSV and writes a day-of-week
// chart, a category chart, and a GeoJSON map layer. Every setting comes from
// the environment; with nothing set it reads sample_sfpd_incident_all.csv and
// writes Days.png, Type.png, and file_sf.geojson to the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chartadapter "github.com/couchcryptid/incident-viz/internal/adapter/chart"
	"github.com/couchcryptid/incident-viz/internal/adapter/geojson"
	httpadapter "github.com/couchcryptid/incident-viz/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/incident-viz/internal/adapter/kafka"
	"github.com/couchcryptid/incident-viz/internal/config"
	"github.com/couchcryptid/incident-viz/internal/observability"
	"github.com/couchcryptid/incident-viz/internal/pipeline"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg).With("run_id", uuid.NewString())
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Kafka publishing is feature-flagged via KAFKA_BROKERS.
	var publisher pipeline.FeaturePublisher
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	p := pipeline.New(pipeline.Options{
		InputPath:         cfg.InputPath,
		Delimiter:         cfg.InputDelimiter,
		DaysChartPath:     cfg.DaysChartPath(),
		CategoryChartPath: cfg.CategoryChartPath(),
		GeoJSONPath:       cfg.GeoJSONPath(),
		Region:            cfg.ChartRegion,
		Year:              cfg.ChartYear,
	},
		chartadapter.NewRenderer(logger),
		geojson.NewWriter(cfg.GeoJSONNumericCoords, logger),
		publisher,
		logger,
		metrics,
	)

	runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			logger.Error("metrics textfile error", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("pipeline error", "error", runErr)
		return 1
	}

	if cfg.HTTPAddr != "" {
		srv := httpadapter.NewServer(cfg.HTTPAddr, p, cfg.OutputDir, cfg.ArtifactFiles(), logger)
		if err := serve(ctx, srv, cfg.ShutdownTimeout, logger); err != nil {
			logger.Error("http server error", "error", err)
			return 1
		}
	}
	return 0
}

// server is the lifecycle of *httpadapter.Server.
type server interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until SIGINT or SIGTERM cancels ctx. A listener that fails
// to start is returned immediately.
func serve(ctx context.Context, srv server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	startErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	select {
	case err := <-startErr:
		return fmt.Errorf("start http server: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
	return nil
}
