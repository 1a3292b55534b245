package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/incident-viz/internal/domain"
	"github.com/couchcryptid/incident-viz/internal/observability"
)

// Stage names used as metric labels and log attributes.
const (
	StageParse         = "parse"
	StageDaysChart     = "days_chart"
	StageCategoryChart = "category_chart"
	StageGeoExport     = "geo_export"
	StagePublish       = "publish"
)

// FeatureWriter persists a feature collection to a file.
type FeatureWriter interface {
	WriteCollection(path string, fc domain.FeatureCollection) error
}

// FeaturePublisher forwards exported features to a downstream sink.
type FeaturePublisher interface {
	PublishFeatures(ctx context.Context, features []domain.GeoFeature) error
}

// Options locate the input and the three artifacts of a run.
type Options struct {
	InputPath         string
	Delimiter         rune
	DaysChartPath     string
	CategoryChartPath string
	GeoJSONPath       string
	Region            string
	Year              string
}

// Pipeline parses the incident CSV once and produces the day-of-week chart,
// the category chart, and the GeoJSON export from the same Dataset.
type Pipeline struct {
	opts      Options
	renderer  domain.ChartRenderer
	writer    FeatureWriter
	publisher FeaturePublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline. publisher may be nil, in which case exported
// features are only written to disk.
func New(opts Options, r domain.ChartRenderer, w FeatureWriter, pub FeaturePublisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		opts:      opts,
		renderer:  r,
		writer:    w,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a run has written every artifact.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Run executes one full pass. The first failing stage aborts the run;
// artifacts written by earlier stages are left in place.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "input", p.opts.InputPath)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	start := clock.Now()

	var ds domain.Dataset
	err := p.stage(StageParse, func() error {
		var err error
		ds, err = domain.ParseFile(p.opts.InputPath, p.opts.Delimiter)
		return err
	})
	if err != nil {
		return err
	}
	p.metrics.RecordsParsed.Add(float64(ds.Len()))
	p.logger.Info("input parsed", "records", ds.Len(), "fields", len(ds.Header))

	if err := p.stage(StageDaysChart, func() error { return p.VisualizeDays(ds) }); err != nil {
		return err
	}
	if err := p.stage(StageCategoryChart, func() error { return p.VisualizeCategories(ds) }); err != nil {
		return err
	}
	if err := p.ExportGeo(ctx, ds); err != nil {
		return err
	}

	p.metrics.LastSuccess.Set(float64(clock.Now().Unix()))
	p.ready.Store(true)
	p.logger.Info("pipeline finished", "duration", clock.Since(start))
	return nil
}

// VisualizeDays renders incident counts per weekday, Monday through Sunday.
func (p *Pipeline) VisualizeDays(ds domain.Dataset) error {
	counts, err := domain.CountBy(ds, domain.FieldDayOfWeek, domain.Weekdays...)
	if err != nil {
		return err
	}
	if err := p.renderer.RenderLine(domain.DayOfWeekChart(counts, p.opts.DaysChartPath)); err != nil {
		return err
	}
	p.metrics.ArtifactsWritten.WithLabelValues("days_chart").Inc()
	p.logger.Info("day-of-week chart written", "path", p.opts.DaysChartPath, "total", counts.Total())
	return nil
}

// VisualizeCategories renders one bar per observed category.
func (p *Pipeline) VisualizeCategories(ds domain.Dataset) error {
	counts, err := domain.CountBy(ds, domain.FieldCategory)
	if err != nil {
		return err
	}
	chart := domain.CategoryChart(counts, p.opts.Region, p.opts.Year, p.opts.CategoryChartPath)
	if err := p.renderer.RenderBar(chart); err != nil {
		return err
	}
	p.metrics.ArtifactsWritten.WithLabelValues("category_chart").Inc()
	p.logger.Info("category chart written", "path", p.opts.CategoryChartPath, "categories", len(counts))
	return nil
}

// ExportGeo writes the FeatureCollection of every record with usable
// coordinates, then publishes the same features when a publisher is set.
func (p *Pipeline) ExportGeo(ctx context.Context, ds domain.Dataset) error {
	var fc domain.FeatureCollection
	err := p.stage(StageGeoExport, func() error {
		var err error
		fc, err = domain.ToFeatureCollection(ds)
		if err != nil {
			return err
		}
		return p.writer.WriteCollection(p.opts.GeoJSONPath, fc)
	})
	if err != nil {
		return err
	}
	skipped := ds.Len() - fc.Len()
	p.metrics.FeaturesExported.Add(float64(fc.Len()))
	p.metrics.RecordsSkipped.Add(float64(skipped))
	p.metrics.ArtifactsWritten.WithLabelValues("geojson").Inc()
	p.logger.Info("geojson written", "path", p.opts.GeoJSONPath, "features", fc.Len(), "skipped", skipped)

	if p.publisher == nil {
		return nil
	}
	err = p.stage(StagePublish, func() error {
		return p.publisher.PublishFeatures(ctx, fc.Features)
	})
	if err != nil {
		return err
	}
	p.metrics.FeaturesPublished.Add(float64(fc.Len()))
	return nil
}

// stage times fn and records a failure against the stage label.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := clock.Now()
	err := fn()
	p.metrics.StageDuration.WithLabelValues(name).Observe(clock.Since(start).Seconds())
	if err != nil {
		p.metrics.StageErrors.WithLabelValues(name).Inc()
		p.logger.Error("stage failed", "stage", name, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
