package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/tabula/pkg/cli"
	"mercator-hq/tabula/pkg/config"
	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/table/recorder"
	"mercator-hq/tabula/pkg/table/retention"
	"mercator-hq/tabula/pkg/telemetry/health"
	"mercator-hq/tabula/pkg/telemetry/metrics"
	"mercator-hq/tabula/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-export whenever the inputs change",
	Long: `Export once, then watch the sheet definition and row file and export
again after every change.

When telemetry.metrics.listen_address is set, Prometheus metrics are served
there along with /health, /ready and /version endpoints. When storage is
enabled, every export is stored and the retention schedule prunes old
documents.

Examples:
  tabula watch --definition sheet.yaml --rows rows.json --output patients.xlsx
  tabula watch -c tabula.yaml -d sheet.yaml -r rows.csv -f csv -o patients.csv`,
	RunE: runWatch,
}

var watchOutput string

func init() {
	rootCmd.AddCommand(watchCmd)
	addSheetFlags(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output file (required)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()

	input, err := sheetFlags()
	if err != nil {
		return err
	}
	if watchOutput == "" {
		return cli.NewUsageError("--output is required")
	}
	format := formatFlag(cfg)

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	var store table.Storage
	if cfg.Storage.Enabled {
		store, err = openStorage(&cfg.Storage)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer store.Close()
	}

	collector := newCollector(cfg)
	rec := newRecorder(cfg, store, collector)

	var (
		lastMu  sync.Mutex
		lastErr error
	)
	render := func(ctx context.Context) error {
		err := renderOnce(ctx, cmd, cfg, rec, input, format)
		lastMu.Lock()
		lastErr = err
		lastMu.Unlock()
		return err
	}

	// A broken input at startup is reported but does not stop the watcher.
	if err := render(ctx); err != nil {
		logger.Error("initial export failed", "error", err)
	}

	watcher, err := watch.New(watch.FromConfig(cfg.Watch, input.definition, input.rows))
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	if addr := cfg.Telemetry.Metrics.ListenAddress; addr != "" && cfg.Telemetry.Metrics.Enabled {
		checker := health.New(2 * time.Second)
		checker.RegisterCheck("last_export", func(ctx context.Context) error {
			lastMu.Lock()
			defer lastMu.Unlock()
			return lastErr
		})
		if store != nil {
			checker.RegisterCheck("storage", func(ctx context.Context) error {
				_, err := store.Count(ctx, nil)
				return err
			})
		}

		mux := http.NewServeMux()
		collector.Mount(mux, cfg.Telemetry.Metrics.Path)
		health.Register(mux, checker, Version, GitCommit, BuildDate)

		go func() {
			err := metrics.Serve(ctx, addr, mux)
			if err != nil {
				cancel()
			}
			serveErr <- err
		}()
	} else {
		serveErr <- nil
	}

	if store != nil {
		scheduler := retention.NewScheduler(retention.NewPruner(store, collector, retention.FromConfig(cfg.Retention)))
		if err := scheduler.Start(ctx); err != nil {
			watcher.Close()
			return cli.NewCommandError("watch", err)
		}
		defer scheduler.Stop()
		if next := scheduler.NextRun(); next != nil {
			logger.Info("retention scheduled", "next_run", next)
		}
	}

	watchErr := watcher.Watch(ctx, func(path string) error {
		return render(ctx)
	})
	cancel()

	if err := <-serveErr; err != nil {
		return cli.NewCommandError("watch", fmt.Errorf("metrics server: %w", err))
	}
	if watchErr != nil {
		return cli.NewCommandError("watch", watchErr)
	}
	return nil
}

// renderOnce exports the inputs and replaces the output file.
func renderOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config, rec *recorder.Recorder, input sheetInput, format string) error {
	doc, err := exportOnce(ctx, cfg, rec, input, format)
	if err != nil {
		return err
	}
	if err := writeOutput(watchOutput, doc.Data, nil); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d rows, %d bytes)\n", watchOutput, doc.Rows, doc.Size)
	return nil
}
