package imports

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

// DBTX is satisfied by *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const insertRun = `
INSERT INTO import_runs (id, source, status, error,
    teams_created, teams_updated, teams_skipped,
    players_created, players_updated, players_skipped,
    report, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

const pruneRuns = `
DELETE FROM import_runs
WHERE id NOT IN (SELECT id FROM import_runs ORDER BY started_at DESC LIMIT $1)
`

const listRecentRuns = `
SELECT id, source, status, error,
    teams_created, teams_updated, teams_skipped,
    players_created, players_updated, players_skipped,
    report, started_at, finished_at
FROM import_runs
ORDER BY started_at DESC
LIMIT $1
`

// Queries runs the import_runs statements against a connection or transaction
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) InsertRun(ctx context.Context, run *models.ImportRun) error {
	report := pqtype.NullRawMessage{RawMessage: run.Report, Valid: len(run.Report) > 0}
	_, err := q.db.ExecContext(ctx, insertRun,
		run.ID, run.Source, string(run.Status), sqlutil.ToSqlString(run.Error),
		run.TeamsCreated, run.TeamsUpdated, run.TeamsSkipped,
		run.PlayersCreated, run.PlayersUpdated, run.PlayersSkipped,
		report, run.StartedAt, sqlutil.ToSqlTime(run.FinishedAt),
	)
	return err
}

func (q *Queries) PruneRuns(ctx context.Context, keep int) (int64, error) {
	res, err := q.db.ExecContext(ctx, pruneRuns, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) ListRecentRuns(ctx context.Context, limit int) ([]models.ImportRun, error) {
	rows, err := q.db.QueryContext(ctx, listRecentRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.ImportRun
	for rows.Next() {
		var (
			run        models.ImportRun
			status     string
			errMsg     sql.NullString
			report     pqtype.NullRawMessage
			finishedAt sql.NullTime
		)
		if err := rows.Scan(
			&run.ID, &run.Source, &status, &errMsg,
			&run.TeamsCreated, &run.TeamsUpdated, &run.TeamsSkipped,
			&run.PlayersCreated, &run.PlayersUpdated, &run.PlayersSkipped,
			&report, &run.StartedAt, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		run.Status = models.ImportRunStatus(status)
		run.Error = sqlutil.FromSqlStringPtr(errMsg)
		run.FinishedAt = sqlutil.FromSqlTime(finishedAt)
		if report.Valid {
			run.Report = report.RawMessage
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
