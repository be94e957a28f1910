package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "barangay_centroids"

// Metrics holds the Prometheus counters and gauges for one centroid run.
// Each Metrics owns its registry, so a run exports only its own values.
type Metrics struct {
	RecordsRead    prometheus.Counter
	RecordsKept    prometheus.Counter
	RecordsSkipped prometheus.Counter
	RowsWritten    prometheus.Counter

	ProvinceRecords *prometheus.GaugeVec // labels: province, name

	RunDuration          prometheus.Gauge
	LastSuccessTimestamp prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates all run metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_read_total",
			Help:      "Shapefile features read.",
		}),
		RecordsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_kept_total",
			Help:      "Features inside the target provinces.",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Features outside the target provinces.",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Data rows written to the output CSV.",
		}),
		ProvinceRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "province_records",
			Help:      "Rows produced per target province in the last run.",
		}, []string{"province", "name"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RecordsRead,
		m.RecordsKept,
		m.RecordsSkipped,
		m.RowsWritten,
		m.ProvinceRecords,
		m.RunDuration,
		m.LastSuccessTimestamp,
	)

	return m
}

// Gatherer exposes the run registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the gathered metrics in the text exposition format
// for the node exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
