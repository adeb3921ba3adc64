// Package importer loads teams and players from a two-sheet workbook into the
// object store, linking each player to the team row it references.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/sheet"
	"github.com/rs/zerolog"
)

// Config names the source workbook, its sheets and the target folders
type Config struct {
	Source        string `yaml:"source"`
	TeamsSheet    string `yaml:"teams_sheet"`
	PlayersSheet  string `yaml:"players_sheet"`
	TeamsFolder   string `yaml:"teams_folder"`
	PlayersFolder string `yaml:"players_folder"`
}

// DefaultConfig returns the layout the import has always used
func DefaultConfig() Config {
	return Config{
		Source:        "/data.xlsx",
		TeamsSheet:    "teams",
		PlayersSheet:  "players",
		TeamsFolder:   "/Teams",
		PlayersFolder: "/Players",
	}
}

// Option configures an Importer
type Option func(*Importer)

// WithClock replaces the real clock, for tests
func WithClock(c clockwork.Clock) Option {
	return func(im *Importer) { im.clock = c }
}

// WithMetrics records row and run metrics
func WithMetrics(m MetricsCollector) Option {
	return func(im *Importer) { im.metrics = m }
}

// Importer runs the spreadsheet import
type Importer struct {
	cfg       Config
	folders   FolderStore
	assets    AssetStore
	teams     *TeamReconciler
	players   *PlayerReconciler
	validator *RowValidator
	clock     clockwork.Clock
	metrics   MetricsCollector
	logger    zerolog.Logger
}

// New creates a new Importer
func New(cfg Config, stores Stores, assets AssetStore, logger zerolog.Logger, opts ...Option) *Importer {
	im := &Importer{
		cfg:       cfg,
		folders:   stores.Folders,
		assets:    assets,
		teams:     NewTeamReconciler(stores.Teams, assets, logger),
		players:   NewPlayerReconciler(stores.Players, logger),
		validator: NewRowValidator(),
		clock:     clockwork.NewRealClock(),
		metrics:   NoOpMetricsCollector{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Run imports the teams sheet completely and then the players sheet.
// The returned report is never nil, even when a setup error aborts the run.
func (im *Importer) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.New(),
		Source:    im.cfg.Source,
		StartedAt: im.clock.Now().UTC(),
	}

	err := im.run(ctx, report)
	report.FinishedAt = im.clock.Now().UTC()

	im.metrics.RecordRun(string(RunStatus(err)), report.Duration())

	if err != nil {
		im.logger.Error().Err(err).Str("run_id", report.RunID.String()).Msg("Import aborted")
		return report, err
	}

	im.logger.Info().
		Str("run_id", report.RunID.String()).
		Int("teams_created", report.Teams.Created).
		Int("teams_updated", report.Teams.Updated).
		Int("teams_skipped", report.Teams.Skipped).
		Int("players_created", report.Players.Created).
		Int("players_updated", report.Players.Updated).
		Int("players_skipped", report.Players.Skipped).
		Dur("duration", report.Duration()).
		Msg("Import finished")
	return report, nil
}

func (im *Importer) run(ctx context.Context, report *Report) error {
	wb, err := im.openSource(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := wb.Close(); err != nil {
			im.logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	for _, name := range []string{im.cfg.TeamsSheet, im.cfg.PlayersSheet} {
		if !wb.HasSheet(name) {
			return fmt.Errorf("%w: %s does not contain a %s sheet (found: %s)",
				ErrSheetMissing, im.cfg.Source, name, strings.Join(wb.SheetNames(), ", "))
		}
	}

	teamRows, err := wb.Rows(im.cfg.TeamsSheet)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	playerRows, err := wb.Rows(im.cfg.PlayersSheet)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	teamsFolder, err := im.folders.EnsureFolder(ctx, im.cfg.TeamsFolder)
	if err != nil {
		return fmt.Errorf("failed to ensure folder %s: %w", im.cfg.TeamsFolder, err)
	}

	processed, err := im.importTeams(ctx, teamRows, teamsFolder, report)
	if err != nil {
		return err
	}

	playersFolder, err := im.folders.EnsureFolder(ctx, im.cfg.PlayersFolder)
	if err != nil {
		return fmt.Errorf("failed to ensure folder %s: %w", im.cfg.PlayersFolder, err)
	}

	return im.importPlayers(ctx, playerRows, playersFolder, processed, wb.DateSystem(), report)
}

// openSource resolves the source asset and decodes it
func (im *Importer) openSource(ctx context.Context) (*sheet.Workbook, error) {
	asset, err := im.assets.Get(ctx, im.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, im.cfg.Source, err)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset %s does not exist", ErrSourceNotFound, im.cfg.Source)
	}

	rc, err := im.assets.Open(ctx, im.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, im.cfg.Source, err)
	}
	defer rc.Close()

	wb, err := sheet.Open(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	return wb, nil
}

func (im *Importer) importTeams(ctx context.Context, rows []sheet.Row, folder *models.Folder, report *Report) (TeamIdentifierMap, error) {
	sheetName := im.cfg.TeamsSheet
	processed := make(TeamIdentifierMap, len(rows))
	seen := make(map[int64]int, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		label := rowLabel("team", row, teamColName)

		rec, err := im.validator.ParseTeam(row)
		if err != nil {
			im.skip(report, &report.Teams, sheetName, row.Number, label, err)
			continue
		}

		var warnings []string
		if first, dup := seen[rec.TeamID]; dup {
			w := fmt.Sprintf("team id %d already used in row %d, this row replaces it", rec.TeamID, first)
			warnings = append(warnings, w)
			im.logger.Warn().Str("sheet", sheetName).Int("row", row.Number).Msg(w)
		}
		seen[rec.TeamID] = row.Number

		team, outcome, more, err := im.teams.Reconcile(ctx, rec, folder)
		if err != nil {
			return nil, err
		}
		processed[rec.TeamID] = team

		im.record(report, &report.Teams, RowResult{
			Sheet:    sheetName,
			Row:      row.Number,
			Label:    label,
			Outcome:  outcome,
			Warnings: append(warnings, more...),
		})
	}

	return processed, nil
}

func (im *Importer) importPlayers(ctx context.Context, rows []sheet.Row, folder *models.Folder, teams TeamIdentifierMap, dates sheet.DateSystem, report *Report) error {
	sheetName := im.cfg.PlayersSheet
	seen := make(map[models.PlayerKey]int, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		label := rowLabel("player", row, playerColFirstName, playerColLastName)

		rec, err := im.validator.ParsePlayer(row)
		if err != nil {
			im.skip(report, &report.Players, sheetName, row.Number, label, err)
			continue
		}

		var warnings []string
		key := models.PlayerKey{FirstName: rec.FirstName, LastName: rec.LastName, Number: rec.Number, Position: rec.Position}
		if first, dup := seen[key]; dup {
			w := fmt.Sprintf("player %s already imported from row %d, this row replaces it", rec.FullName(), first)
			warnings = append(warnings, w)
			im.logger.Warn().Str("sheet", sheetName).Int("row", row.Number).Msg(w)
		}

		_, outcome, more, err := im.players.Reconcile(ctx, rec, folder, teams, dates)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				im.skip(report, &report.Players, sheetName, row.Number, label, err)
				continue
			}
			return err
		}
		seen[key] = row.Number

		im.record(report, &report.Players, RowResult{
			Sheet:    sheetName,
			Row:      row.Number,
			Label:    label,
			Outcome:  outcome,
			Warnings: append(warnings, more...),
		})
	}

	return nil
}

func (im *Importer) skip(report *Report, summary *SheetSummary, sheetName string, row int, label string, err error) {
	reason := err.Error()
	var verr *ValidationError
	if errors.As(err, &verr) {
		reason = verr.Message
	}

	im.logger.Warn().
		Str("sheet", sheetName).
		Int("row", row).
		Str("reason", reason).
		Msgf("Validation for %s failed, skipped this row", label)

	im.record(report, summary, RowResult{
		Sheet:   sheetName,
		Row:     row,
		Label:   label,
		Outcome: OutcomeSkipped,
		Reason:  reason,
	})
}

func (im *Importer) record(report *Report, summary *SheetSummary, res RowResult) {
	if len(res.Warnings) == 0 {
		res.Warnings = nil
	}
	report.add(res, summary)
	im.metrics.RecordRow(res.Sheet, res.Outcome)
}
