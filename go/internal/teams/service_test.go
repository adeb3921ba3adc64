package teams

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	teams map[uuid.UUID]*models.Team
	list  []TeamSummary
	err   error
}

func (f *fakeRepo) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return t, nil
}

func (f *fakeRepo) ListTeamsWithPlayerCount(context.Context) ([]TeamSummary, error) {
	return f.list, f.err
}

type fakePlayers map[uuid.UUID][]models.Player

func (f fakePlayers) ListPlayersByTeam(_ context.Context, teamID uuid.UUID) ([]models.Player, error) {
	return f[teamID], nil
}

func newRouter(repo *fakeRepo, players fakePlayers) *mux.Router {
	r := mux.NewRouter()
	NewService(NewApp(repo, players), zerolog.Nop()).Register(r)
	return r
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestListTeams(t *testing.T) {
	lions := models.Team{ID: uuid.New(), Name: "Lions"}
	repo := &fakeRepo{list: []TeamSummary{{Team: lions, PlayerCount: 2}}}

	rec := serve(t, newRouter(repo, nil), "/teams")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Teams []struct {
			ID          uuid.UUID `json:"id"`
			Name        string    `json:"name"`
			PlayerCount int       `json:"player_count"`
		} `json:"teams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Teams, 1)
	assert.Equal(t, lions.ID, body.Teams[0].ID)
	assert.Equal(t, 2, body.Teams[0].PlayerCount)
}

func TestListTeamsEmptyIsArray(t *testing.T) {
	rec := serve(t, newRouter(&fakeRepo{}, nil), "/teams")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"teams":[]}`, rec.Body.String())
}

func TestListTeamsFailure(t *testing.T) {
	rec := serve(t, newRouter(&fakeRepo{err: errors.New("db down")}, nil), "/teams")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestGetTeam(t *testing.T) {
	lions := &models.Team{ID: uuid.New(), Name: "Lions"}
	ann := models.Player{ID: uuid.New(), FirstName: "Ann", LastName: "Lee", TeamID: &lions.ID}
	repo := &fakeRepo{teams: map[uuid.UUID]*models.Team{lions.ID: lions}}
	router := newRouter(repo, fakePlayers{lions.ID: {ann}})

	t.Run("found", func(t *testing.T) {
		rec := serve(t, router, "/teams/"+lions.ID.String())
		require.Equal(t, http.StatusOK, rec.Code)

		var detail TeamDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, "Lions", detail.Name)
		require.Len(t, detail.Players, 1)
		assert.Equal(t, ann.ID, detail.Players[0].ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := serve(t, router, "/teams/"+uuid.NewString())
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"team does not exist"}`, rec.Body.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := serve(t, router, "/teams/seven")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
