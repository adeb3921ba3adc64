// Package testdb gives integration tests a migrated Postgres database.
package testdb

import (
	"context"
	"database/sql"
	"net"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/mcdev12/teamsheet/go/internal/dbconfig"
	"github.com/mcdev12/teamsheet/go/internal/migrations"
	"github.com/stretchr/testify/require"
)

const advisoryLockID = 7301

// DB bundles both handles onto the same database
type DB struct {
	Pool *pgxpool.Pool
	SQL  *sql.DB
}

// Open migrates the database named by DB_* and empties every table.
// It skips the test when Postgres is unreachable outside CI.
func Open(tb testing.TB) *DB {
	tb.Helper()

	cfg, err := dbconfig.NewConfigFromEnv()
	require.NoError(tb, err)

	if !canDial(cfg) {
		if strings.TrimSpace(os.Getenv("CI")) != "" {
			tb.Fatalf("postgres is not reachable at %s", cfg.Address())
		}
		tb.Skip("postgres is not reachable; skipping integration test")
	}

	ctx := context.Background()
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	// packages run in parallel against one database
	lock, err := sqlDB.Conn(ctx)
	require.NoError(tb, err)
	_, err = lock.ExecContext(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID)
	require.NoError(tb, err)
	tb.Cleanup(func() {
		_, _ = lock.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", advisoryLockID)
		_ = lock.Close()
	})

	_, err = migrations.Up(ctx, sqlDB)
	require.NoError(tb, err)

	_, err = sqlDB.ExecContext(ctx, "TRUNCATE import_runs, players, teams, folders")
	require.NoError(tb, err)

	pool, err := pgxpool.New(ctx, cfg.DSN())
	require.NoError(tb, err)
	tb.Cleanup(pool.Close)

	return &DB{Pool: pool, SQL: sqlDB}
}

func canDial(cfg dbconfig.Config) bool {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dialer := &net.Dialer{Timeout: 250 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
