package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/tabula/pkg/cli"
	"mercator-hq/tabula/pkg/config"
	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/table/export"
	"mercator-hq/tabula/pkg/table/source"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a sheet definition and its rows without exporting",
	Long: `Load the configuration, the sheet definition and optionally a row file,
and report any problem an export would fail on.

Examples:
  tabula validate --definition sheet.yaml
  tabula validate -c tabula.yaml -d sheet.yaml -r rows.csv -f csv`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addSheetFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()

	if exportFlags.definition == "" {
		return cli.NewUsageError("--definition is required")
	}
	format := formatFlag(cfg)
	if _, err := export.New(format, exportOptions(&cfg.Export)); err != nil {
		return cli.NewCommandError("validate", err)
	}

	var sheet table.Sheet
	if exportFlags.rows == "" {
		def, err := source.LoadDefinition(exportFlags.definition)
		if err != nil {
			return cli.NewCommandError("validate", err)
		}
		if sheet, err = def.Sheet(nil, cfg.Export.DefaultSheetName); err != nil {
			return cli.NewCommandError("validate", err)
		}
	} else {
		input, err := sheetFlags()
		if err != nil {
			return err
		}
		if sheet, err = input.load(cfg); err != nil {
			return cli.NewCommandError("validate", err)
		}
	}

	if err := sheet.Validate(); err != nil {
		return cli.NewCommandError("validate", err)
	}
	if max := cfg.Export.MaxRows; max > 0 && len(sheet.Rows) > max {
		return cli.NewCommandError("validate", table.NewValidationError("rows",
			fmt.Sprintf("%d rows exceeds the limit of %d", len(sheet.Rows), max)))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OK: sheet %q, %d columns, %d rows, format %s\n",
		sheet.Name, len(sheet.Columns), len(sheet.Rows), format)
	return nil
}
