package importer

import (
	"context"
	"io"

	"github.com/mcdev12/teamsheet/go/internal/models"
)

// TeamStore is what the importer needs to reconcile teams.
// FindTeamByName returns nil, nil when no team has that name.
type TeamStore interface {
	FindTeamByName(ctx context.Context, name string) (*models.Team, error)
	SaveTeam(ctx context.Context, team *models.Team) error
}

// PlayerStore is what the importer needs to reconcile players.
// FindPlayer returns nil, nil when no player matches the key.
type PlayerStore interface {
	FindPlayer(ctx context.Context, key models.PlayerKey) (*models.Player, error)
	SavePlayer(ctx context.Context, player *models.Player) error
}

// FolderStore provides the containers new records are created under
type FolderStore interface {
	EnsureFolder(ctx context.Context, path string) (*models.Folder, error)
}

// AssetStore resolves logical asset paths. Get returns nil, nil for a missing asset.
type AssetStore interface {
	Get(ctx context.Context, path string) (*models.Asset, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Stores groups the object store collaborators of a run
type Stores struct {
	Teams   TeamStore
	Players PlayerStore
	Folders FolderStore
}
