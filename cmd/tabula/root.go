package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/tabula/pkg/cli"
	"mercator-hq/tabula/pkg/config"
	"mercator-hq/tabula/pkg/telemetry/logging"
	"mercator-hq/tabula/pkg/telemetry/tracing"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// logger and tracer are installed by the root pre-run hook.
	logger *logging.Logger
	tracer *tracing.Tracer
)

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Tabula - tabular data to spreadsheet documents",
	Long: `Tabula turns rows of JSON, YAML or CSV data into XLSX workbooks,
CSV files or JSON arrays, described by a small YAML sheet definition.

Exports can be stored in a SQLite document store, pruned by a retention
schedule and re-generated automatically when their inputs change.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	defer shutdownTracing()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads configuration and installs the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.ReloadConfig(cfgFile); err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	cfg := config.MustGetConfig()

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	if verbose {
		logCfg.Level = "debug"
	}
	logCfg.Writer = cmd.ErrOrStderr()

	l, err := logging.New(logCfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	l.SetDefault()
	logger = l

	shutdownTracing()
	t, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", err.Error())
	}
	tracer = t
	return nil
}

// shutdownTracing flushes pending spans of the installed tracer.
func shutdownTracing() {
	if tracer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tracer.Shutdown(ctx); err != nil {
		logger.Warn("failed to flush traces", "error", err)
	}
	tracer = nil
}
