package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mercator-hq/tabula/pkg/cli"
	"mercator-hq/tabula/pkg/config"
	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/table/recorder"
	"mercator-hq/tabula/pkg/telemetry/logging"
)

var exportFlags struct {
	definition string
	rows       string
	format     string
	sheetName  string
	output     string
	store      bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export rows as a spreadsheet document",
	Long: `Export rows described by a sheet definition as XLSX, CSV or JSON.

The sheet definition is a YAML file:

  sheet_name: Patients
  columns:
    - header: Name
      field: name
    - header: Summary
      template: "{{.name}} ({{.age}})"

Rows are read from a .json array of objects, a .yaml sequence of mappings
or a .csv file whose header line names the fields.

Examples:
  # Write a workbook
  tabula export --definition sheet.yaml --rows rows.json --output patients.xlsx

  # Print CSV to stdout
  tabula export --definition sheet.yaml --rows rows.yaml --format csv

  # Keep a copy in the document store
  tabula export --definition sheet.yaml --rows rows.json --output out.xlsx --store`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addSheetFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportFlags.store, "store", false, "store the document (default: storage.enabled)")
}

// addSheetFlags registers the input flags shared by export and watch.
func addSheetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&exportFlags.definition, "definition", "d", "", "sheet definition file (YAML)")
	cmd.Flags().StringVarP(&exportFlags.rows, "rows", "r", "", "row file (.json, .yaml, .yml, .csv)")
	cmd.Flags().StringVarP(&exportFlags.format, "format", "f", "", "output format: xlsx, csv, json (default: export.default_format)")
	cmd.Flags().StringVar(&exportFlags.sheetName, "sheet-name", "", "override the sheet name")
}

func sheetFlags() (sheetInput, error) {
	if exportFlags.definition == "" {
		return sheetInput{}, cli.NewUsageError("--definition is required")
	}
	if exportFlags.rows == "" {
		return sheetInput{}, cli.NewUsageError("--rows is required")
	}
	return sheetInput{
		definition: exportFlags.definition,
		rows:       exportFlags.rows,
		sheetName:  exportFlags.sheetName,
	}, nil
}

func formatFlag(cfg *config.Config) string {
	if exportFlags.format != "" {
		return exportFlags.format
	}
	return cfg.Export.DefaultFormat
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()

	input, err := sheetFlags()
	if err != nil {
		return err
	}

	var store table.Storage
	if exportFlags.store || cfg.Storage.Enabled {
		store, err = openStorage(&cfg.Storage)
		if err != nil {
			return cli.NewCommandError("export", err)
		}
		defer store.Close()
	}

	rec := newRecorder(cfg, store, newCollector(cfg))
	doc, err := exportOnce(cmd.Context(), cfg, rec, input, formatFlag(cfg))
	if err != nil {
		return cli.NewCommandError("export", err)
	}

	if err := writeOutput(exportFlags.output, doc.Data, cmd.OutOrStdout()); err != nil {
		return cli.NewCommandError("export", err)
	}

	if store != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Stored document %s (%s, %d bytes)\n", doc.ID, doc.Name, doc.Size)
	}
	return nil
}

// exportOnce loads the inputs and records one document.
func exportOnce(ctx context.Context, cfg *config.Config, rec *recorder.Recorder, input sheetInput, format string) (*table.Document, error) {
	sheet, err := input.load(cfg)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithFormat(logging.WithSheet(ctx, sheet.Name), format)
	doc, err := rec.Record(ctx, format, sheet)
	if err != nil {
		return nil, err
	}

	logger.WithContext(logging.WithDocumentID(ctx, doc.ID)).Debug("export complete",
		"rows", doc.Rows,
		"size", doc.Size,
	)
	return doc, nil
}

// writeOutput writes data to path, or to stdout when path is empty. Files
// are replaced atomically so readers never see a partial document.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %q: %w", path, err)
	}
	return nil
}
