package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/mcdev12/teamsheet/go/internal/dbconfig"
	"github.com/rs/zerolog"
)

func setupPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// setupDatabase opens the database/sql handle used by the import history
func setupDatabase(ctx context.Context, logger zerolog.Logger) (*sql.DB, error) {
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	database, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", cfg.Address()).Msg("Connected to database")
	return database, nil
}
