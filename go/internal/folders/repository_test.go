package folders

import (
	"context"
	"testing"

	"github.com/mcdev12/teamsheet/go/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFolder(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRepository(db.Pool)
	ctx := context.Background()

	first, err := repo.EnsureFolder(ctx, "Teams/")
	require.NoError(t, err)
	assert.Equal(t, "/Teams", first.Path)
	assert.Equal(t, "Teams", first.Key)

	second, err := repo.EnsureFolder(ctx, "/Teams")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
