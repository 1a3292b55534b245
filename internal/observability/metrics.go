package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one pipeline run.
type Metrics struct {
	RecordsParsed     prometheus.Counter
	RecordsSkipped    prometheus.Counter // rows dropped by the zero-coordinate filter
	FeaturesExported  prometheus.Counter
	FeaturesPublished prometheus.Counter
	PipelineRunning   prometheus.Gauge
	LastSuccess       prometheus.Gauge

	ArtifactsWritten *prometheus.CounterVec   // labels: artifact={days_chart,category_chart,geojson}
	StageDuration    *prometheus.HistogramVec // labels: stage={parse,days_chart,category_chart,geo_export,publish}
	StageErrors      *prometheus.CounterVec   // labels: stage
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RecordsParsed,
		m.RecordsSkipped,
		m.FeaturesExported,
		m.FeaturesPublished,
		m.PipelineRunning,
		m.LastSuccess,
		m.ArtifactsWritten,
		m.StageDuration,
		m.StageErrors,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incidentviz",
			Name:      "records_parsed_total",
			Help:      "Total data rows read from the input CSV.",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incidentviz",
			Name:      "records_skipped_total",
			Help:      "Rows left out of the GeoJSON export because of a zero coordinate.",
		}),
		FeaturesExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incidentviz",
			Name:      "features_exported_total",
			Help:      "Total features written to the GeoJSON document.",
		}),
		FeaturesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incidentviz",
			Name:      "features_published_total",
			Help:      "Total features published to the Kafka sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incidentviz",
			Name:      "pipeline_running",
			Help:      "1 while the pipeline is running, 0 otherwise.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incidentviz",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that wrote every artifact.",
		}),
		ArtifactsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incidentviz",
			Name:      "artifacts_written_total",
			Help:      "Output files written, by artifact.",
		}, []string{"artifact"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "incidentviz",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incidentviz",
			Name:      "stage_errors_total",
			Help:      "Pipeline stage failures, by stage.",
		}, []string{"stage"}),
	}
}
