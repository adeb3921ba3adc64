package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/objectkey"
	"github.com/mcdev12/teamsheet/go/internal/sqlutil"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

const teamColumns = `t.id, t.folder_id, t.key, t.name, t.trainer, t.location, t.latitude, t.longitude,
       t.founded, t.description, t.logo_path, t.published, t.created_at, t.updated_at`

const findTeamByName = `
SELECT ` + teamColumns + ` FROM teams t
WHERE t.name = $1
ORDER BY t.created_at, t.id
LIMIT 1
`

const getTeam = `SELECT ` + teamColumns + ` FROM teams t WHERE t.id = $1`

const listTeamsWithPlayerCount = `
SELECT ` + teamColumns + `, count(p.id)
FROM teams t
LEFT JOIN players p ON p.team_id = t.id
GROUP BY t.id
ORDER BY t.name, t.key
`

const teamKeyExists = `SELECT EXISTS (SELECT 1 FROM teams WHERE folder_id = $1 AND key = $2)`

const insertTeam = `
INSERT INTO teams (id, folder_id, key, name, trainer, location, latitude, longitude,
                   founded, description, logo_path, published)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING created_at, updated_at
`

const updateTeam = `
UPDATE teams
SET name = $2, trainer = $3, location = $4, latitude = $5, longitude = $6,
    founded = $7, description = $8, logo_path = $9, published = $10, updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at
`

// Repository implements team data access operations
type Repository struct {
	db DBTX
}

// NewRepository creates a new teams repository
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// FindTeamByName returns the oldest team with the given name, or nil when there is none
func (r *Repository) FindTeamByName(ctx context.Context, name string) (*models.Team, error) {
	team, err := scanTeam(r.db.QueryRow(ctx, findTeamByName, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find team by name: %w", err)
	}
	return team, nil
}

// GetTeam retrieves a team by ID
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := scanTeam(r.db.QueryRow(ctx, getTeam, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// ListTeamsWithPlayerCount retrieves all teams ordered by name with their player counts
func (r *Repository) ListTeamsWithPlayerCount(ctx context.Context) ([]TeamSummary, error) {
	rows, err := r.db.Query(ctx, listTeamsWithPlayerCount)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var out []TeamSummary
	for rows.Next() {
		var (
			s     TeamSummary
			logo  sql.NullString
			count int64
		)
		err := rows.Scan(
			&s.ID, &s.FolderID, &s.Key, &s.Name, &s.Trainer, &s.Location,
			&s.Coordinates.Latitude, &s.Coordinates.Longitude, &s.Founded, &s.Description,
			&logo, &s.Published, &s.CreatedAt, &s.UpdatedAt, &count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		s.LogoPath = sqlutil.FromSqlStringPtr(logo)
		s.PlayerCount = int(count)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return out, nil
}

// SaveTeam inserts a new team or updates an existing one.
// New teams get an id and a key that is unique inside their folder.
func (r *Repository) SaveTeam(ctx context.Context, team *models.Team) error {
	if team.IsNew() {
		return r.insert(ctx, team)
	}

	err := r.db.QueryRow(ctx, updateTeam,
		team.ID, team.Name, team.Trainer, team.Location,
		team.Coordinates.Latitude, team.Coordinates.Longitude,
		team.Founded, team.Description, sqlutil.ToSqlString(team.LogoPath), team.Published,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return nil
}

func (r *Repository) insert(ctx context.Context, team *models.Team) error {
	key, err := objectkey.Unique(ctx, team.Key, func(ctx context.Context, k string) (bool, error) {
		var exists bool
		err := r.db.QueryRow(ctx, teamKeyExists, team.FolderID, k).Scan(&exists)
		return exists, err
	})
	if err != nil {
		return fmt.Errorf("failed to pick team key: %w", err)
	}

	id := uuid.New()
	err = r.db.QueryRow(ctx, insertTeam,
		id, team.FolderID, key, team.Name, team.Trainer, team.Location,
		team.Coordinates.Latitude, team.Coordinates.Longitude,
		team.Founded, team.Description, sqlutil.ToSqlString(team.LogoPath), team.Published,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	team.ID = id
	team.Key = key
	return nil
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var (
		t    models.Team
		logo sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.FolderID, &t.Key, &t.Name, &t.Trainer, &t.Location,
		&t.Coordinates.Latitude, &t.Coordinates.Longitude, &t.Founded, &t.Description,
		&logo, &t.Published, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.LogoPath = sqlutil.FromSqlStringPtr(logo)
	return &t, nil
}
