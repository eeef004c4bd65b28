package config

import "time"

// Config is the root configuration structure for tabula.
type Config struct {
	// Export controls format selection and per-format options.
	Export ExportConfig `yaml:"export"`

	// Storage controls where exported documents are kept.
	Storage StorageConfig `yaml:"storage"`

	// Retention controls pruning of stored documents.
	Retention RetentionConfig `yaml:"retention"`

	// Watch controls the file watcher used by "tabula watch".
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ExportConfig contains exporter configuration.
type ExportConfig struct {
	// DefaultFormat is used when no format is requested.
	// Options: "xlsx", "csv", "json"
	// Default: "xlsx"
	DefaultFormat string `yaml:"default_format"`

	// DefaultSheetName is used when a definition names no sheet.
	// Default: "Sheet1"
	DefaultSheetName string `yaml:"default_sheet_name"`

	// CSVHeader writes a header record in CSV output.
	// Default: true
	CSVHeader bool `yaml:"csv_header"`

	// CSVBOM prefixes CSV output with a UTF-8 byte order mark.
	// Default: false
	CSVBOM bool `yaml:"csv_bom"`

	// CSVNumbers converts numeric CSV input fields into numbers.
	// Default: false
	CSVNumbers bool `yaml:"csv_numbers"`

	// JSONPretty indents JSON output.
	// Default: true
	JSONPretty bool `yaml:"json_pretty"`

	// MaxRows rejects sheets with more data rows (0 = unlimited).
	// Default: 0
	MaxRows int `yaml:"max_rows"`
}

// StorageConfig contains document storage configuration.
type StorageConfig struct {
	// Enabled turns on persistence of exported documents.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains SQLite storage configuration.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/documents.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains document retention configuration.
type RetentionConfig struct {
	// Days is how long documents are kept (0 = forever).
	// Default: 30
	Days int `yaml:"days"`

	// MaxDocuments caps the number of stored documents (0 = unlimited).
	// Default: 0
	MaxDocuments int64 `yaml:"max_documents"`

	// Schedule is the cron expression for automatic pruning.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// WatchConfig contains file watcher configuration.
type WatchConfig struct {
	// Debounce is the quiet period before a change triggers a re-export.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions that trigger re-exports.
	// Default: [".yaml", ".yml", ".json", ".csv"]
	Extensions []string `yaml:"extensions"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "tabula"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "export"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress serves the metrics endpoint when set, e.g. ":9090".
	// Default: "" (no endpoint)
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// DurationBuckets defines histogram buckets for export duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	DurationBuckets []float64 `yaml:"duration_buckets"`

	// SizeBuckets defines histogram buckets for output size (bytes).
	// Default: [1KB, 10KB, 100KB, 1MB, 10MB, 100MB]
	SizeBuckets []float64 `yaml:"size_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled turns on span export.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ServiceName is the service.name resource attribute.
	// Default: "tabula"
	ServiceName string `yaml:"service_name"`

	// Exporter selects the span exporter.
	// Options: "otlp"
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the collector address for the OTLP gRPC exporter.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Sampler is the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces kept by the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Insecure disables TLS to the collector.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
