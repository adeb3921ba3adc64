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

func openSQL(ctx context.Context, logger zerolog.Logger) (*sql.DB, error) {
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Debug().Str("database", cfg.Address()).Msg("connected to database")
	return db, nil
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
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
