package main

import (
	"fmt"

	"mercator-hq/tabula/pkg/config"
	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/table/export"
	"mercator-hq/tabula/pkg/table/recorder"
	"mercator-hq/tabula/pkg/table/source"
	"mercator-hq/tabula/pkg/table/storage"
	"mercator-hq/tabula/pkg/telemetry/metrics"
)

// sheetInput names the files a sheet is built from.
type sheetInput struct {
	definition string
	rows       string
	sheetName  string
}

// load reads the definition and rows and combines them into a sheet.
func (in sheetInput) load(cfg *config.Config) (table.Sheet, error) {
	def, err := source.LoadDefinition(in.definition)
	if err != nil {
		return table.Sheet{}, err
	}
	rows, err := source.LoadRows(in.rows, source.RowOptions{CSVNumbers: cfg.Export.CSVNumbers})
	if err != nil {
		return table.Sheet{}, err
	}
	sheet, err := def.Sheet(rows, cfg.Export.DefaultSheetName)
	if err != nil {
		return table.Sheet{}, err
	}
	if in.sheetName != "" {
		sheet.Name = in.sheetName
	}
	return sheet, nil
}

// openStorage opens the configured storage backend.
func openStorage(cfg *config.StorageConfig) (table.Storage, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "sqlite":
		store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:         cfg.SQLite.Path,
			Driver:       cfg.SQLite.Driver,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.SQLite.MaxIdleConns,
			WALMode:      cfg.SQLite.WALMode,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s (supported: sqlite, memory)", cfg.Backend)
	}
}

func exportOptions(cfg *config.ExportConfig) export.Options {
	return export.Options{
		CSVHeader:  cfg.CSVHeader,
		CSVBOM:     cfg.CSVBOM,
		JSONPretty: cfg.JSONPretty,
	}
}

func newCollector(cfg *config.Config) *metrics.Collector {
	return metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
}

func newRecorder(cfg *config.Config, store table.Storage, collector *metrics.Collector) *recorder.Recorder {
	return recorder.NewRecorder(store, collector, &recorder.Config{
		Export:  exportOptions(&cfg.Export),
		MaxRows: cfg.Export.MaxRows,
	})
}
