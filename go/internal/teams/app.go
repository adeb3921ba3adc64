package teams

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/teamsheet/go/internal/models"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeamsWithPlayerCount(ctx context.Context) ([]TeamSummary, error)
}

// PlayerLister provides the roster of a team
type PlayerLister interface {
	ListPlayersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
}

// App handles teams business logic
type App struct {
	repo    TeamsRepository
	players PlayerLister
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, players PlayerLister) *App {
	return &App{
		repo:    repo,
		players: players,
	}
}

// ListTeams retrieves all teams with their player counts
func (a *App) ListTeams(ctx context.Context) ([]TeamSummary, error) {
	teams, err := a.repo.ListTeamsWithPlayerCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		teams = []TeamSummary{}
	}
	return teams, nil
}

// GetTeamDetail retrieves a team and the players linked to it
func (a *App) GetTeamDetail(ctx context.Context, id uuid.UUID) (*TeamDetail, error) {
	team, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	players, err := a.players.ListPlayersByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", id, err)
	}
	if players == nil {
		players = []models.Player{}
	}

	return &TeamDetail{Team: *team, Players: players}, nil
}
