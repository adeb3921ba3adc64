// Package folders stores the containers teams and players are created under.
package folders

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mcdev12/teamsheet/go/internal/models"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

const ensureFolder = `
INSERT INTO folders (id, path, key)
VALUES ($1, $2, $3)
ON CONFLICT (path) DO NOTHING
`

const getFolderByPath = `
SELECT id, path, key, created_at FROM folders WHERE path = $1
`

// Repository implements folder data access operations
type Repository struct {
	db DBTX
}

// NewRepository creates a new folders repository
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// EnsureFolder returns the folder at p, creating it when needed
func (r *Repository) EnsureFolder(ctx context.Context, p string) (*models.Folder, error) {
	p = path.Clean("/" + p)
	if _, err := r.db.Exec(ctx, ensureFolder, uuid.New(), p, path.Base(p)); err != nil {
		return nil, fmt.Errorf("failed to create folder %s: %w", p, err)
	}

	var f models.Folder
	err := r.db.QueryRow(ctx, getFolderByPath, p).Scan(&f.ID, &f.Path, &f.Key, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder %s: %w", p, err)
	}
	return &f, nil
}
