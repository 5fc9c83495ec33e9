package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, gauges, and histograms for an
// ingestion run. Record-level counters are labelled by kind
// ("observation" or "forecast").
type Metrics struct {
	RecordsInserted *prometheus.CounterVec
	RecordsSkipped  *prometheus.CounterVec
	RowsDiscarded   *prometheus.CounterVec

	TelemetryReadings prometheus.Gauge
	RunDuration       *prometheus.HistogramVec // label: mode={actual,forecast}
}

// NewMetrics creates and registers all ingestion metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_ingest",
			Name:      "records_inserted_total",
			Help:      "Records newly persisted, by kind.",
		}, []string{"kind"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_ingest",
			Name:      "records_skipped_total",
			Help:      "Records skipped as natural-key duplicates, by kind.",
		}, []string{"kind"}),
		RowsDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_ingest",
			Name:      "rows_discarded_total",
			Help:      "Raw rows dropped for an unparseable time, by kind.",
		}, []string{"kind"}),
		TelemetryReadings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_ingest",
			Name:      "telemetry_readings",
			Help:      "Telemetry readings fetched for the current run.",
		}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_ingest",
			Name:      "run_duration_seconds",
			Help:      "Duration of one reconciliation pass.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"mode"}),
	}

	prometheus.MustRegister(
		m.RecordsInserted,
		m.RecordsSkipped,
		m.RowsDiscarded,
		m.TelemetryReadings,
		m.RunDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsInserted:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_ingest", Name: "records_inserted_total"}, []string{"kind"}),
		RecordsSkipped:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_ingest", Name: "records_skipped_total"}, []string{"kind"}),
		RowsDiscarded:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_ingest", Name: "rows_discarded_total"}, []string{"kind"}),
		TelemetryReadings: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_ingest", Name: "telemetry_readings"}),
		RunDuration:       prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_ingest", Name: "run_duration_seconds"}, []string{"mode"}),
	}
}
