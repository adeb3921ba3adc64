// Package memstore keeps teams, players and folders in memory. It backs dry
// runs of the import and the importer tests.
package memstore

import (
	"context"
	"path"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/objectkey"
)

// Store is a goroutine-safe in-memory object store
type Store struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	folders map[string]*models.Folder
	teams   map[uuid.UUID]*models.Team
	players map[uuid.UUID]*models.Player
}

// New creates an empty Store
func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:   clock,
		folders: make(map[string]*models.Folder),
		teams:   make(map[uuid.UUID]*models.Team),
		players: make(map[uuid.UUID]*models.Player),
	}
}

// EnsureFolder returns the folder at p, creating it when needed
func (s *Store) EnsureFolder(_ context.Context, p string) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.folders[p]; ok {
		copied := *f
		return &copied, nil
	}
	f := &models.Folder{
		ID:        uuid.New(),
		Path:      p,
		Key:       path.Base(p),
		CreatedAt: s.clock.Now().UTC(),
	}
	s.folders[p] = f
	copied := *f
	return &copied, nil
}

// FindTeamByName returns the first team with the given name, or nil
func (s *Store) FindTeamByName(_ context.Context, name string) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Team
	for _, t := range s.teams {
		if t.Name != name {
			continue
		}
		if found == nil || t.CreatedAt.Before(found.CreatedAt) {
			found = t
		}
	}
	if found == nil {
		return nil, nil
	}
	copied := *found
	return &copied, nil
}

// SaveTeam inserts a new team or replaces an existing one.
// New teams get an id and a key that is unique inside their folder.
func (s *Store) SaveTeam(ctx context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()
	if team.IsNew() {
		key, err := objectkey.Unique(ctx, team.Key, func(_ context.Context, k string) (bool, error) {
			return s.teamKeyTaken(team.FolderID, k), nil
		})
		if err != nil {
			return err
		}
		team.ID = uuid.New()
		team.Key = key
		team.CreatedAt = now
	}
	team.UpdatedAt = now

	copied := *team
	s.teams[team.ID] = &copied
	return nil
}

func (s *Store) teamKeyTaken(folder uuid.UUID, key string) bool {
	for _, t := range s.teams {
		if t.FolderID == folder && t.Key == key {
			return true
		}
	}
	return false
}

// FindPlayer returns the first player matching key, or nil
func (s *Store) FindPlayer(_ context.Context, key models.PlayerKey) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Player
	for _, p := range s.players {
		if p.NaturalKey() != key {
			continue
		}
		if found == nil || p.CreatedAt.Before(found.CreatedAt) {
			found = p
		}
	}
	if found == nil {
		return nil, nil
	}
	copied := *found
	return &copied, nil
}

// SavePlayer inserts a new player or replaces an existing one
func (s *Store) SavePlayer(ctx context.Context, player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()
	if player.IsNew() {
		key, err := objectkey.Unique(ctx, player.Key, func(_ context.Context, k string) (bool, error) {
			return s.playerKeyTaken(player.FolderID, k), nil
		})
		if err != nil {
			return err
		}
		player.ID = uuid.New()
		player.Key = key
		player.CreatedAt = now
	}
	player.UpdatedAt = now

	copied := *player
	s.players[player.ID] = &copied
	return nil
}

func (s *Store) playerKeyTaken(folder uuid.UUID, key string) bool {
	for _, p := range s.players {
		if p.FolderID == folder && p.Key == key {
			return true
		}
	}
	return false
}

// Teams returns all teams ordered by name
func (s *Store) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].Key < out[j].Key
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Players returns all players ordered by last and first name
func (s *Store) Players() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// PlayersByTeam returns the players linked to teamID
func (s *Store) PlayersByTeam(teamID uuid.UUID) []models.Player {
	var out []models.Player
	for _, p := range s.Players() {
		if p.TeamID != nil && *p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}
