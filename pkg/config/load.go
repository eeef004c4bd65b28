package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "TABULA_"

// LoadConfig reads the YAML file at path on top of the defaults and
// validates the result. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration like LoadConfig and then
// applies TABULA_* environment variables before validating again.
// Unparseable override values are ignored.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg, os.LookupEnv)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

// applyEnvOverrides applies TABULA_SECTION_FIELD variables to cfg.
func applyEnvOverrides(cfg *Config, lookup lookupFunc) {
	env := envReader{lookup: lookup}

	// Export overrides
	env.str("EXPORT_DEFAULT_FORMAT", &cfg.Export.DefaultFormat)
	env.str("EXPORT_DEFAULT_SHEET_NAME", &cfg.Export.DefaultSheetName)
	env.boolean("EXPORT_CSV_HEADER", &cfg.Export.CSVHeader)
	env.boolean("EXPORT_CSV_BOM", &cfg.Export.CSVBOM)
	env.boolean("EXPORT_CSV_NUMBERS", &cfg.Export.CSVNumbers)
	env.boolean("EXPORT_JSON_PRETTY", &cfg.Export.JSONPretty)
	env.integer("EXPORT_MAX_ROWS", &cfg.Export.MaxRows)

	// Storage overrides
	env.boolean("STORAGE_ENABLED", &cfg.Storage.Enabled)
	env.str("STORAGE_BACKEND", &cfg.Storage.Backend)
	env.str("STORAGE_SQLITE_PATH", &cfg.Storage.SQLite.Path)
	env.str("STORAGE_SQLITE_DRIVER", &cfg.Storage.SQLite.Driver)
	env.integer("STORAGE_SQLITE_MAX_OPEN_CONNS", &cfg.Storage.SQLite.MaxOpenConns)
	env.integer("STORAGE_SQLITE_MAX_IDLE_CONNS", &cfg.Storage.SQLite.MaxIdleConns)
	env.boolean("STORAGE_SQLITE_WAL_MODE", &cfg.Storage.SQLite.WALMode)
	env.duration("STORAGE_SQLITE_BUSY_TIMEOUT", &cfg.Storage.SQLite.BusyTimeout)

	// Retention overrides
	env.integer("RETENTION_DAYS", &cfg.Retention.Days)
	env.integer64("RETENTION_MAX_DOCUMENTS", &cfg.Retention.MaxDocuments)
	env.str("RETENTION_SCHEDULE", &cfg.Retention.Schedule)

	// Watch overrides
	env.duration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)
	env.list("WATCH_EXTENSIONS", &cfg.Watch.Extensions)

	// Telemetry overrides
	env.str("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	env.str("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	env.boolean("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	env.boolean("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	env.str("TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	env.str("TELEMETRY_METRICS_SUBSYSTEM", &cfg.Telemetry.Metrics.Subsystem)
	env.str("TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	env.str("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	env.boolean("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	env.str("TELEMETRY_TRACING_SERVICE_NAME", &cfg.Telemetry.Tracing.ServiceName)
	env.str("TELEMETRY_TRACING_EXPORTER", &cfg.Telemetry.Tracing.Exporter)
	env.str("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	env.str("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	env.float("TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)
	env.boolean("TELEMETRY_TRACING_INSECURE", &cfg.Telemetry.Tracing.Insecure)
	env.duration("TELEMETRY_TRACING_TIMEOUT", &cfg.Telemetry.Tracing.Timeout)
}

type envReader struct {
	lookup lookupFunc
}

func (e envReader) get(name string) (string, bool) {
	val, ok := e.lookup(EnvPrefix + name)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

func (e envReader) str(name string, dst *string) {
	if val, ok := e.get(name); ok {
		*dst = val
	}
}

func (e envReader) boolean(name string, dst *bool) {
	if val, ok := e.get(name); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func (e envReader) integer(name string, dst *int) {
	if val, ok := e.get(name); ok {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func (e envReader) integer64(name string, dst *int64) {
	if val, ok := e.get(name); ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			*dst = i
		}
	}
}

func (e envReader) float(name string, dst *float64) {
	if val, ok := e.get(name); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*dst = f
		}
	}
}

func (e envReader) duration(name string, dst *time.Duration) {
	if val, ok := e.get(name); ok {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

// list splits a comma-separated value, dropping empty items.
func (e envReader) list(name string, dst *[]string) {
	val, ok := e.get(name)
	if !ok {
		return
	}
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) > 0 {
		*dst = items
	}
}
