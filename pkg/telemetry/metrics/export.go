package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/tabula/pkg/config"
)

// Export statuses.
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// ExportMetrics tracks exporter runs.
type ExportMetrics struct {
	exportsTotal   *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
	exportSize     *prometheus.HistogramVec
	rowsTotal      *prometheus.CounterVec
	prunedTotal    prometheus.Counter
}

// NewExportMetrics creates and registers export metrics with registry.
func NewExportMetrics(cfg *config.MetricsConfig, registry prometheus.Registerer) *ExportMetrics {
	em := &ExportMetrics{
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "exports_total",
				Help:      "Total number of exports by format and status",
			},
			[]string{"format", "status"},
		),

		exportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_duration_seconds",
				Help:      "Time spent rendering an export in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"format"},
		),

		exportSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_size_bytes",
				Help:      "Size of rendered exports in bytes",
				Buckets:   cfg.SizeBuckets,
			},
			[]string{"format"},
		),

		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_rows_total",
				Help:      "Total number of data rows exported",
			},
			[]string{"format"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_pruned_total",
				Help:      "Total number of stored documents removed by retention",
			},
		),
	}

	registry.MustRegister(
		em.exportsTotal,
		em.exportDuration,
		em.exportSize,
		em.rowsTotal,
		em.prunedTotal,
	)

	return em
}

// RecordExport records one exporter run. Duration, size and rows are only
// observed for successful runs.
func (em *ExportMetrics) RecordExport(format, status string, duration time.Duration, size, rows int) {
	em.exportsTotal.WithLabelValues(format, status).Inc()
	if status != StatusSuccess {
		return
	}
	em.exportDuration.WithLabelValues(format).Observe(duration.Seconds())
	em.exportSize.WithLabelValues(format).Observe(float64(size))
	em.rowsTotal.WithLabelValues(format).Add(float64(rows))
}

// RecordPruned adds n pruned documents.
func (em *ExportMetrics) RecordPruned(n int64) {
	if n > 0 {
		em.prunedTotal.Add(float64(n))
	}
}
