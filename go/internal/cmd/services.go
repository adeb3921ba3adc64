package main

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/teamsheet/go/internal/imports"
	"github.com/mcdev12/teamsheet/go/internal/player"
	"github.com/mcdev12/teamsheet/go/internal/teams"
	"github.com/rs/zerolog"
)

type Services struct {
	Teams   *teams.Service
	Imports *imports.Service
}

func setupServices(pool *pgxpool.Pool, database *sql.DB, logger zerolog.Logger) *Services {
	// Repository layer → App layer → Service layer

	// Teams
	teamsRepo := teams.NewRepository(pool)
	playerRepo := player.NewRepository(pool)
	teamsApp := teams.NewApp(teamsRepo, playerRepo)
	teamsService := teams.NewService(teamsApp, logger.With().Str("component", "teams").Logger())

	// Import history
	importsRepo := imports.NewRepository(database, 0)
	importsService := imports.NewService(importsRepo, logger.With().Str("component", "imports").Logger())

	return &Services{
		Teams:   teamsService,
		Imports: importsService,
	}
}
