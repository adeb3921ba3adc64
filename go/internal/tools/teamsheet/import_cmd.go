package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mcdev12/teamsheet/go/internal/assets"
	"github.com/mcdev12/teamsheet/go/internal/events"
	"github.com/mcdev12/teamsheet/go/internal/folders"
	"github.com/mcdev12/teamsheet/go/internal/importer"
	"github.com/mcdev12/teamsheet/go/internal/imports"
	"github.com/mcdev12/teamsheet/go/internal/memstore"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/player"
	"github.com/mcdev12/teamsheet/go/internal/teams"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const pushJobName = "teamsheet_import"

type importOptions struct {
	dryRun     bool
	reportPath string
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import-teams",
		Short: "Import teams and players from the configured workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return withCode(exitInvalid, err)
			}
			return runImport(cmd.Context(), cfg, opts, root.logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Run against an in-memory store and write nothing")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write the full JSON report to this file")
	return cmd
}

type runRecorder interface {
	RecordRun(ctx context.Context, run *models.ImportRun) error
}

type backend struct {
	stores  importer.Stores
	history runRecorder
	close   func()
}

func openBackend(ctx context.Context, cfg *Config, dryRun bool, logger zerolog.Logger) (*backend, error) {
	if dryRun {
		mem := memstore.New(nil)
		return &backend{
			stores: importer.Stores{Teams: mem, Players: mem, Folders: mem},
			close:  func() {},
		}, nil
	}

	pool, err := openPool(ctx)
	if err != nil {
		return nil, err
	}
	db, err := openSQL(ctx, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &backend{
		stores: importer.Stores{
			Teams:   teams.NewRepository(pool),
			Players: player.NewRepository(pool),
			Folders: folders.NewRepository(pool),
		},
		history: imports.NewRepository(db, cfg.History.Retention),
		close: func() {
			pool.Close()
			db.Close()
		},
	}, nil
}

func newAssetStore(cfg AssetsConfig) importer.AssetStore {
	if cfg.BaseURL != "" {
		s := assets.NewHTTPStore(cfg.BaseURL)
		s.SetTimeout(cfg.Timeout)
		if cfg.Token != "" {
			s.SetHeader("Authorization", "Bearer "+cfg.Token)
		}
		return s
	}
	return assets.NewFSStore(cfg.Root)
}

func runImport(ctx context.Context, cfg *Config, opts importOptions, logger zerolog.Logger, out io.Writer) error {
	fmt.Fprintln(out, "Import Teams")
	fmt.Fprintln(out, "============")
	fmt.Fprintln(out)

	be, err := openBackend(ctx, cfg, opts.dryRun, logger)
	if err != nil {
		return withCode(exitFailure, err)
	}
	defer be.close()

	reg := prometheus.NewRegistry()
	metrics, err := importer.NewPrometheusMetrics(reg)
	if err != nil {
		return withCode(exitFailure, err)
	}

	im := importer.New(cfg.Import, be.stores, newAssetStore(cfg.Assets), logger, importer.WithMetrics(metrics))
	report, runErr := im.Run(ctx)

	printSummary(out, report, opts.dryRun)

	if opts.reportPath != "" {
		if err := writeReport(opts.reportPath, report); err != nil {
			logger.Warn().Err(err).Str("path", opts.reportPath).Msg("failed to write report")
		}
	}

	if be.history != nil {
		recordRun(ctx, be.history, report, runErr, logger)
	}
	publisher := newPublisher(ctx, cfg, logger)
	publishCompleted(ctx, publisher, report, runErr, logger)
	if err := publisher.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close event publisher")
	}
	if cfg.pushgatewayURL != "" {
		if err := push.New(cfg.pushgatewayURL, pushJobName).Gatherer(reg).PushContext(ctx); err != nil {
			logger.Warn().Err(err).Str("url", cfg.pushgatewayURL).Msg("failed to push metrics")
		}
	}

	if runErr != nil {
		return importExitCode(runErr)
	}
	return nil
}

func recordRun(ctx context.Context, history runRecorder, report *importer.Report, runErr error, logger zerolog.Logger) {
	run, err := imports.RunFromReport(report, runErr)
	if err == nil {
		err = history.RecordRun(ctx, run)
	}
	if err != nil {
		logger.Warn().Err(err).Str("run_id", report.RunID.String()).Msg("failed to record import run")
	}
}

// newPublisher connects to JetStream when NATS_URL is set. Without it, or when the
// connection fails, events are dropped.
func newPublisher(ctx context.Context, cfg *Config, logger zerolog.Logger) events.Publisher {
	if cfg.natsURL == "" {
		return events.NoOpPublisher{}
	}
	publisher, err := events.NewJetStreamPublisher(ctx, cfg.Events, logger)
	if err != nil {
		logger.Warn().Err(err).Str("nats_url", cfg.Events.URL).Msg("failed to connect event publisher")
		return events.NoOpPublisher{}
	}
	return publisher
}

func publishCompleted(ctx context.Context, publisher events.Publisher, report *importer.Report, runErr error, logger zerolog.Logger) {
	if err := publisher.Publish(ctx, events.NewImportCompleted(report, runErr)); err != nil {
		logger.Warn().Err(err).Str("run_id", report.RunID.String()).Msg("failed to publish import event")
	}
}

func printSummary(out io.Writer, report *importer.Report, dryRun bool) {
	fmt.Fprintf(out, "Teams:   %d created, %d updated, %d skipped\n", report.Teams.Created, report.Teams.Updated, report.Teams.Skipped)
	fmt.Fprintf(out, "Players: %d created, %d updated, %d skipped\n", report.Players.Created, report.Players.Updated, report.Players.Skipped)

	if skipped := report.Skipped(); len(skipped) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Skipped rows:")
		for _, row := range skipped {
			fmt.Fprintf(out, "  %s row %d (%s): %s\n", row.Sheet, row.Row, row.Label, row.Reason)
		}
	}

	var warned bool
	for _, row := range report.Rows {
		for _, w := range row.Warnings {
			if !warned {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Warnings:")
				warned = true
			}
			fmt.Fprintf(out, "  %s row %d (%s): %s\n", row.Sheet, row.Row, row.Label, w)
		}
	}

	if dryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Dry run: nothing was stored")
	}
}

func writeReport(path string, report *importer.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
