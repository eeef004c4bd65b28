package config

import "time"

// Default values for configuration fields.
const (
	// Export defaults
	DefaultExportFormat     = "xlsx"
	DefaultExportSheetName  = "Sheet1"
	DefaultExportCSVHeader  = true
	DefaultExportCSVBOM     = false
	DefaultExportJSONPretty = true

	// Storage defaults
	DefaultStorageEnabled        = false
	DefaultStorageBackend        = "sqlite"
	DefaultSQLitePath            = "data/documents.db"
	DefaultSQLiteDriver          = "sqlite"
	DefaultSQLiteMaxOpenConns    = 10
	DefaultSQLiteMaxIdleConns    = 5
	DefaultSQLiteWALMode         = true
	DefaultSQLiteBusyTimeout     = 5 * time.Second
	DefaultRetentionDays         = 30
	DefaultRetentionSchedule     = "0 3 * * *"
	DefaultRetentionMaxDocuments = int64(0)

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "tabula"
	DefaultMetricsSubsystem = "export"
	DefaultPrometheusPath   = "/metrics"
	DefaultTracingService   = "tabula"
	DefaultTracingExporter  = "otlp"
	DefaultTracingEndpoint  = "localhost:4317"
	DefaultTracingSampler   = "always"
	DefaultTracingRatio     = 1.0
	DefaultTracingInsecure  = true
	DefaultTracingTimeout   = 10 * time.Second
)

// DefaultWatchExtensions are the input files that trigger re-exports.
var DefaultWatchExtensions = []string{".yaml", ".yml", ".json", ".csv"}

// DefaultDurationBuckets are histogram buckets for export duration in seconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// DefaultSizeBuckets are histogram buckets for output size in bytes.
var DefaultSizeBuckets = []float64{1 << 10, 10 << 10, 100 << 10, 1 << 20, 10 << 20, 100 << 20}

// NewDefaultConfig returns a configuration with every field at its default.
// Files are decoded on top of it, so boolean defaults of true survive keys
// that are absent from the file.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Export: ExportConfig{
			CSVHeader:  DefaultExportCSVHeader,
			CSVBOM:     DefaultExportCSVBOM,
			JSONPretty: DefaultExportJSONPretty,
		},
		Storage: StorageConfig{
			Enabled: DefaultStorageEnabled,
			SQLite: SQLiteConfig{
				WALMode: DefaultSQLiteWALMode,
			},
		},
		Retention: RetentionConfig{
			Days:         DefaultRetentionDays,
			MaxDocuments: DefaultRetentionMaxDocuments,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				SampleRatio: DefaultTracingRatio,
				Insecure:    DefaultTracingInsecure,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for any fields that have zero values.
// It is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Export defaults
	if cfg.Export.DefaultFormat == "" {
		cfg.Export.DefaultFormat = DefaultExportFormat
	}
	if cfg.Export.DefaultSheetName == "" {
		cfg.Export.DefaultSheetName = DefaultExportSheetName
	}

	// Storage defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.SQLite.Path == "" {
		cfg.Storage.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Storage.SQLite.Driver == "" {
		cfg.Storage.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.Storage.SQLite.MaxOpenConns == 0 {
		cfg.Storage.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Storage.SQLite.MaxIdleConns == 0 {
		cfg.Storage.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.Storage.SQLite.BusyTimeout == 0 {
		cfg.Storage.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Retention defaults
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = DefaultRetentionSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if len(cfg.Telemetry.Metrics.SizeBuckets) == 0 {
		cfg.Telemetry.Metrics.SizeBuckets = append([]float64(nil), DefaultSizeBuckets...)
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.Exporter == "" {
		cfg.Telemetry.Tracing.Exporter = DefaultTracingExporter
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
}
