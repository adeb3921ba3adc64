package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFolderIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(clockwork.NewFakeClock())

	first, err := s.EnsureFolder(ctx, "/Teams")
	require.NoError(t, err)
	second, err := s.EnsureFolder(ctx, "/Teams")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Teams", first.Key)
}

func TestSaveTeamAssignsUniqueKeys(t *testing.T) {
	ctx := context.Background()
	s := New(clockwork.NewFakeClock())
	folder, err := s.EnsureFolder(ctx, "/Teams")
	require.NoError(t, err)

	a := &models.Team{FolderID: folder.ID, Key: "Lions", Name: "Lions"}
	b := &models.Team{FolderID: folder.ID, Key: "Lions", Name: "Lions"}
	require.NoError(t, s.SaveTeam(ctx, a))
	require.NoError(t, s.SaveTeam(ctx, b))

	assert.Equal(t, "Lions", a.Key)
	assert.Equal(t, "Lions_1", b.Key)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, s.Teams(), 2)
}

func TestFindTeamByNameReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New(clockwork.NewFakeClock())

	team := &models.Team{Key: "Lions", Name: "Lions", Trainer: "Bob"}
	require.NoError(t, s.SaveTeam(ctx, team))

	found, err := s.FindTeamByName(ctx, "Lions")
	require.NoError(t, err)
	require.NotNil(t, found)
	found.Trainer = "Alice"

	again, err := s.FindTeamByName(ctx, "Lions")
	require.NoError(t, err)
	assert.Equal(t, "Bob", again.Trainer)

	missing, err := s.FindTeamByName(ctx, "Tigers")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSavePlayerKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s := New(clock)

	p := &models.Player{Key: "Ann Lee", FirstName: "Ann", LastName: "Lee", Number: 7, Position: "GK"}
	require.NoError(t, s.SavePlayer(ctx, p))
	created := p.CreatedAt

	clock.Advance(time.Hour)
	found, err := s.FindPlayer(ctx, models.PlayerKey{FirstName: "Ann", LastName: "Lee", Number: 7, Position: "GK"})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NoError(t, s.SavePlayer(ctx, found))

	assert.Equal(t, created, found.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), found.UpdatedAt)
	assert.Len(t, s.Players(), 1)
}
