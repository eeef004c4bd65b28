package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "storage.sqlite.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate returns a ValidationError listing every rule cfg breaks, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateExport(&cfg.Export)...)
	errs = append(errs, validateStorage(&cfg.Storage)...)
	errs = append(errs, validateRetention(&cfg.Retention)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// oneOf reports whether value is one of the allowed options.
func oneOf(value string, options ...string) bool {
	for _, o := range options {
		if value == o {
			return true
		}
	}
	return false
}

func quoteAll(options []string) string {
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = "'" + o + "'"
	}
	return strings.Join(quoted, ", ")
}

func checkOneOf(field, value string, options ...string) []FieldError {
	if oneOf(value, options...) {
		return nil
	}
	return []FieldError{{
		Field:   field,
		Message: fmt.Sprintf("invalid value %q: must be one of %s", value, quoteAll(options)),
	}}
}

func validateExport(cfg *ExportConfig) []FieldError {
	var errs []FieldError

	errs = append(errs, checkOneOf("export.default_format", cfg.DefaultFormat, "xlsx", "csv", "json")...)
	if cfg.MaxRows < 0 {
		errs = append(errs, FieldError{
			Field:   "export.max_rows",
			Message: "max rows must be >= 0",
		})
	}
	return errs
}

func validateStorage(cfg *StorageConfig) []FieldError {
	var errs []FieldError

	errs = append(errs, checkOneOf("storage.backend", cfg.Backend, "memory", "sqlite")...)
	if cfg.Backend != "sqlite" {
		return errs
	}

	errs = append(errs, checkOneOf("storage.sqlite.driver", cfg.SQLite.Driver, "sqlite", "sqlite3")...)
	if cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "storage.sqlite.path",
			Message: "SQLite path is required",
		})
	}
	if cfg.SQLite.MaxOpenConns < 1 {
		errs = append(errs, FieldError{
			Field:   "storage.sqlite.max_open_conns",
			Message: "max open connections must be >= 1",
		})
	}
	if cfg.SQLite.MaxIdleConns < 0 || cfg.SQLite.MaxIdleConns > cfg.SQLite.MaxOpenConns {
		errs = append(errs, FieldError{
			Field:   "storage.sqlite.max_idle_conns",
			Message: "max idle connections must be between 0 and max_open_conns",
		})
	}
	if cfg.SQLite.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "storage.sqlite.busy_timeout",
			Message: "busy timeout must be >= 0",
		})
	}
	return errs
}

func validateRetention(cfg *RetentionConfig) []FieldError {
	var errs []FieldError

	if cfg.Days < 0 {
		errs = append(errs, FieldError{
			Field:   "retention.days",
			Message: "retention days must be >= 0",
		})
	}
	if cfg.MaxDocuments < 0 {
		errs = append(errs, FieldError{
			Field:   "retention.max_documents",
			Message: "max documents must be >= 0",
		})
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		errs = append(errs, FieldError{
			Field:   "retention.schedule",
			Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
		})
	}
	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be >= 0",
		})
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("watch.extensions[%d]", i),
				Message: fmt.Sprintf("extension %q must start with '.'", ext),
			})
		}
	}
	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	errs = append(errs, checkOneOf("telemetry.logging.level", cfg.Logging.Level, "debug", "info", "warn", "error")...)
	errs = append(errs, checkOneOf("telemetry.logging.format", cfg.Logging.Format, "json", "text")...)

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with '/'",
		})
	}
	if !ascending(cfg.Metrics.DurationBuckets) {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.duration_buckets",
			Message: "buckets must be strictly increasing",
		})
	}
	if !ascending(cfg.Metrics.SizeBuckets) {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.size_buckets",
			Message: "buckets must be strictly increasing",
		})
	}

	if cfg.Tracing.Enabled {
		errs = append(errs, checkOneOf("telemetry.tracing.exporter", cfg.Tracing.Exporter, "otlp")...)
		errs = append(errs, checkOneOf("telemetry.tracing.sampler", cfg.Tracing.Sampler, "always", "never", "ratio")...)
		if cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.endpoint",
				Message: "endpoint is required when tracing is enabled",
			})
		}
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}
	return errs
}

func ascending(buckets []float64) bool {
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return false
		}
	}
	return true
}
