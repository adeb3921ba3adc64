package imports

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mcdev12/teamsheet/go/internal/importer"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runColumns = []string{
	"id", "source", "status", "error",
	"teams_created", "teams_updated", "teams_skipped",
	"players_created", "players_updated", "players_skipped",
	"report", "started_at", "finished_at",
}

func sampleReport() *importer.Report {
	started := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &importer.Report{
		RunID:      uuid.New(),
		Source:     "/data.xlsx",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Teams:      importer.SheetSummary{Created: 2, Skipped: 1},
		Players:    importer.SheetSummary{Updated: 3},
	}
}

func TestRunFromReport(t *testing.T) {
	report := sampleReport()

	run, err := RunFromReport(report, nil)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, run.ID)
	assert.Equal(t, models.ImportRunSucceeded, run.Status)
	assert.Nil(t, run.Error)
	assert.Equal(t, 2, run.TeamsCreated)
	assert.Equal(t, 1, run.TeamsSkipped)
	assert.Equal(t, 3, run.PlayersUpdated)
	require.NotNil(t, run.FinishedAt)
	assert.Equal(t, report.FinishedAt, *run.FinishedAt)

	var decoded importer.Report
	require.NoError(t, json.Unmarshal(run.Report, &decoded))
	assert.Equal(t, report.Teams, decoded.Teams)

	failed, err := RunFromReport(report, errors.New("connection reset"))
	require.NoError(t, err)
	assert.Equal(t, models.ImportRunFailed, failed.Status)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "connection reset", *failed.Error)

	invalid, err := RunFromReport(report, importer.ErrSheetMissing)
	require.NoError(t, err)
	assert.Equal(t, models.ImportRunInvalid, invalid.Status)
}

func TestRecordRunInsertsAndPrunes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	run, err := RunFromReport(sampleReport(), nil)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO import_runs")).
		WithArgs(run.ID.String(), "/data.xlsx", "succeeded", nil, 2, 0, 1, 0, 3, 0,
			sqlmock.AnyArg(), run.StartedAt, *run.FinishedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM import_runs")).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	require.NoError(t, NewRepository(db, 10).RecordRun(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRunRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	run, err := RunFromReport(sampleReport(), nil)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO import_runs")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewRepository(db, 0).RecordRun(context.Background(), run)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	started := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(runColumns).
		AddRow(id.String(), "/data.xlsx", "invalid", "required sheet missing", 0, 0, 0, 0, 0, 0,
			[]byte(`{"teams":{}}`), started, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM import_runs")).WithArgs(5).WillReturnRows(rows)

	runs, err := NewRepository(db, 0).ListRecent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, models.ImportRunInvalid, runs[0].Status)
	require.NotNil(t, runs[0].Error)
	assert.Equal(t, "required sheet missing", *runs[0].Error)
	assert.Nil(t, runs[0].FinishedAt)
	assert.JSONEq(t, `{"teams":{}}`, string(runs[0].Report))
	assert.NoError(t, mock.ExpectationsWereMet())
}
