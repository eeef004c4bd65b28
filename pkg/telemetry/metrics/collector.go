package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/tabula/pkg/config"
)

// Collector owns the registry and every metric tabula records.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	exportMetrics *ExportMetrics
}

// NewCollector creates a collector registering into registry, or into a new
// registry when registry is nil. Zero-valued naming and bucket fields in cfg
// are filled with defaults.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}
	if len(cfg.SizeBuckets) == 0 {
		cfg.SizeBuckets = append([]float64(nil), config.DefaultSizeBuckets...)
	}

	return &Collector{
		config:        cfg,
		registry:      registry,
		exportMetrics: NewExportMetrics(cfg, registry),
	}
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordExport records one exporter run.
//
// Parameters:
//   - format: export format ("xlsx", "csv", "json")
//   - status: StatusSuccess, StatusInvalid or StatusError
//   - duration: time spent rendering
//   - size: output size in bytes
//   - rows: number of data rows
func (c *Collector) RecordExport(format, status string, duration time.Duration, size, rows int) {
	if !c.enabled() {
		return
	}
	c.exportMetrics.RecordExport(format, status, duration, size, rows)
}

// RecordPruned records documents removed by retention.
func (c *Collector) RecordPruned(n int64) {
	if !c.enabled() {
		return
	}
	c.exportMetrics.RecordPruned(n)
}
