package player

import (
	"context"
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

const playerColumns = `id, folder_id, key, first_name, last_name, number, birthday, position, team_id, published, created_at, updated_at`

const findPlayer = `
SELECT ` + playerColumns + ` FROM players
WHERE first_name = $1 AND last_name = $2 AND number = $3 AND position = $4
ORDER BY created_at, id
LIMIT 1
`

const getPlayer = `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

const listPlayersByTeam = `
SELECT ` + playerColumns + ` FROM players
WHERE team_id = $1
ORDER BY last_name, first_name, key
`

const playerKeyExists = `SELECT EXISTS (SELECT 1 FROM players WHERE folder_id = $1 AND key = $2)`

const insertPlayer = `
INSERT INTO players (id, folder_id, key, first_name, last_name, number, birthday, position, team_id, published)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at
`

const updatePlayer = `
UPDATE players
SET first_name = $2, last_name = $3, number = $4, birthday = $5, position = $6,
    team_id = $7, published = $8, updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at
`

// Repository handles all player-related database operations
type Repository struct {
	db DBTX
}

// NewRepository creates a new player repository
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// FindPlayer returns the oldest player matching key, or nil when there is none
func (r *Repository) FindPlayer(ctx context.Context, key models.PlayerKey) (*models.Player, error) {
	row := r.db.QueryRow(ctx, findPlayer, key.FirstName, key.LastName, key.Number, key.Position)
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find player: %w", err)
	}
	return p, nil
}

// GetPlayer retrieves a player by ID
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, err := scanPlayer(r.db.QueryRow(ctx, getPlayer, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// ListPlayersByTeam retrieves the players linked to a team
func (r *Repository) ListPlayersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	rows, err := r.db.Query(ctx, listPlayersByTeam, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players by team: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list players by team: %w", err)
	}
	return players, nil
}

// SavePlayer inserts a new player or updates an existing one.
// New players get an id and a key that is unique inside their folder.
func (r *Repository) SavePlayer(ctx context.Context, p *models.Player) error {
	if p.IsNew() {
		return r.insert(ctx, p)
	}

	err := r.db.QueryRow(ctx, updatePlayer,
		p.ID, p.FirstName, p.LastName, p.Number, p.Birthday, p.Position,
		sqlutil.ToNullUUID(p.TeamID), p.Published,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}

func (r *Repository) insert(ctx context.Context, p *models.Player) error {
	key, err := objectkey.Unique(ctx, p.Key, func(ctx context.Context, k string) (bool, error) {
		var exists bool
		err := r.db.QueryRow(ctx, playerKeyExists, p.FolderID, k).Scan(&exists)
		return exists, err
	})
	if err != nil {
		return fmt.Errorf("failed to pick player key: %w", err)
	}

	id := uuid.New()
	err = r.db.QueryRow(ctx, insertPlayer,
		id, p.FolderID, key, p.FirstName, p.LastName, p.Number, p.Birthday, p.Position,
		sqlutil.ToNullUUID(p.TeamID), p.Published,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	p.ID = id
	p.Key = key
	return nil
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var (
		p      models.Player
		teamID uuid.NullUUID
	)
	err := row.Scan(
		&p.ID, &p.FolderID, &p.Key, &p.FirstName, &p.LastName, &p.Number,
		&p.Birthday, &p.Position, &teamID, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.TeamID = sqlutil.FromNullUUID(teamID)
	p.Birthday = p.Birthday.UTC()
	return &p, nil
}
