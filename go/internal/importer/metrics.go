package importer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector defines the interface for collecting import metrics
type MetricsCollector interface {
	RecordRow(sheet string, outcome Outcome)
	RecordRun(status string, duration time.Duration)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordRow(sheet string, outcome Outcome)         {}
func (NoOpMetricsCollector) RecordRun(status string, duration time.Duration) {}

// PrometheusMetrics implements MetricsCollector using Prometheus
type PrometheusMetrics struct {
	rows        *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	lastRun     prometheus.Gauge
}

// NewPrometheusMetrics creates the collectors and registers them with reg
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamsheet",
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Spreadsheet rows processed, by sheet and outcome.",
		}, []string{"sheet", "outcome"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamsheet",
			Subsystem: "import",
			Name:      "runs_total",
			Help:      "Import runs, by final status.",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "teamsheet",
			Subsystem: "import",
			Name:      "run_duration_seconds",
			Help:      "Wall time of import runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "teamsheet",
			Subsystem: "import",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last import run finished.",
		}),
	}

	for _, c := range []prometheus.Collector{m.rows, m.runs, m.runDuration, m.lastRun} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordRow(sheet string, outcome Outcome) {
	m.rows.WithLabelValues(sheet, string(outcome)).Inc()
}

func (m *PrometheusMetrics) RecordRun(status string, duration time.Duration) {
	m.runs.WithLabelValues(status).Inc()
	m.runDuration.Observe(duration.Seconds())
	m.lastRun.SetToCurrentTime()
}
