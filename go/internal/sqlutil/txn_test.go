package sqlutil

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type txQueries struct {
	tx *sql.Tx
}

func newTxQueries(tx *sql.Tx) *txQueries { return &txQueries{tx: tx} }

func TestRunCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM import_runs").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err = Run(context.Background(), db, newTxQueries, func(q *txQueries) error {
		_, err := q.tx.Exec("DELETE FROM import_runs")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = Run(context.Background(), db, newTxQueries, func(*txQueries) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = Run(context.Background(), db, newTxQueries, func(*txQueries) error { panic("boom") })
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunBeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err = Run(context.Background(), db, newTxQueries, func(*txQueries) error { return nil })
	assert.ErrorContains(t, err, "begin transaction")
}
