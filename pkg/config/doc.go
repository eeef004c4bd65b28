// Package config provides configuration management for tabula.
//
// Configuration is read from a YAML file, completed with defaults, then
// optionally overridden from the environment and validated.
//
//	cfg, err := config.LoadConfigWithEnvOverrides("tabula.yaml")
//
// An empty path skips the file and yields the defaults.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention TABULA_SECTION_FIELD:
//
//   - TABULA_EXPORT_DEFAULT_FORMAT overrides export.default_format
//   - TABULA_STORAGE_SQLITE_PATH overrides storage.sqlite.path
//   - TABULA_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Singleton Pattern
//
//	if err := config.Initialize("tabula.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// # Validation
//
// Validate collects every problem it finds into a single ValidationError
// whose Errors name the offending fields by their YAML path.
package config
