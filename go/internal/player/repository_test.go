package player

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/teamsheet/go/internal/folders"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryFindAndSave(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	folder, err := folders.NewRepository(db.Pool).EnsureFolder(ctx, "/Players")
	require.NoError(t, err)
	repo := NewRepository(db.Pool)

	key := models.PlayerKey{FirstName: "Ann", LastName: "Lee", Number: 9, Position: "Striker"}
	missing, err := repo.FindPlayer(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, missing)

	ann := &models.Player{
		FolderID:  folder.ID,
		Key:       "Ann Lee",
		FirstName: "Ann",
		LastName:  "Lee",
		Number:    9,
		Birthday:  time.Date(1993, 1, 1, 6, 30, 0, 0, time.UTC),
		Position:  "Striker",
		Published: true,
	}
	require.NoError(t, repo.SavePlayer(ctx, ann))

	namesake := &models.Player{FolderID: folder.ID, Key: "Ann Lee", FirstName: "Ann", LastName: "Lee", Number: 4, Position: "Keeper"}
	require.NoError(t, repo.SavePlayer(ctx, namesake))
	assert.Equal(t, "Ann Lee_1", namesake.Key)

	found, err := repo.FindPlayer(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ann.ID, found.ID)
	assert.Equal(t, ann.Birthday, found.Birthday)
	assert.Nil(t, found.TeamID)

	_, err = repo.GetPlayer(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	byTeam, err := repo.ListPlayersByTeam(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, byTeam)
}
