// Package imports keeps the history of import runs.
package imports

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/teamsheet/go/internal/importer"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/sqlutil"
)

// DefaultRetention is how many runs are kept when none is configured
const DefaultRetention = 500

// Repository records and lists import runs
type Repository struct {
	db        *sql.DB
	queries   *Queries
	retention int
}

// NewRepository creates a new import run repository keeping at most retention runs
func NewRepository(db *sql.DB, retention int) *Repository {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Repository{
		db:        db,
		queries:   New(db),
		retention: retention,
	}
}

// RecordRun stores run and drops the oldest runs beyond the retention limit
func (r *Repository) RecordRun(ctx context.Context, run *models.ImportRun) error {
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) *Queries { return New(tx) }, func(q *Queries) error {
		if err := q.InsertRun(ctx, run); err != nil {
			return fmt.Errorf("failed to insert import run: %w", err)
		}
		if _, err := q.PruneRuns(ctx, r.retention); err != nil {
			return fmt.Errorf("failed to prune import runs: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record import run %s: %w", run.ID, err)
	}
	return nil
}

// ListRecent returns the newest runs first
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.ImportRun, error) {
	runs, err := r.queries.ListRecentRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	if runs == nil {
		runs = []models.ImportRun{}
	}
	return runs, nil
}

// RunFromReport converts the outcome of importer.Run into a history entry
func RunFromReport(report *importer.Report, runErr error) (*models.ImportRun, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode import report: %w", err)
	}

	run := &models.ImportRun{
		ID:             report.RunID,
		Source:         report.Source,
		Status:         importer.RunStatus(runErr),
		TeamsCreated:   report.Teams.Created,
		TeamsUpdated:   report.Teams.Updated,
		TeamsSkipped:   report.Teams.Skipped,
		PlayersCreated: report.Players.Created,
		PlayersUpdated: report.Players.Updated,
		PlayersSkipped: report.Players.Skipped,
		Report:         raw,
		StartedAt:      report.StartedAt,
	}
	if runErr != nil {
		msg := runErr.Error()
		run.Error = &msg
	}
	if !report.FinishedAt.IsZero() {
		finished := report.FinishedAt
		run.FinishedAt = &finished
	}
	return run, nil
}
