package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/teamsheet/go/internal/imports"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/teams"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubTeams struct{}

func (stubTeams) ListTeams(context.Context) ([]teams.TeamSummary, error) {
	return []teams.TeamSummary{}, nil
}

func (stubTeams) GetTeamDetail(context.Context, uuid.UUID) (*teams.TeamDetail, error) {
	return nil, teams.ErrTeamNotFound
}

type stubRuns struct{}

func (stubRuns) ListRecent(context.Context, int) ([]models.ImportRun, error) {
	return nil, nil
}

func testHandler() http.Handler {
	services := &Services{
		Teams:   teams.NewService(stubTeams{}, zerolog.Nop()),
		Imports: imports.NewService(stubRuns{}, zerolog.Nop()),
	}
	return newHandler(services, zerolog.Nop())
}

func TestRoutes(t *testing.T) {
	h := testHandler()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/teams", http.StatusOK},
		{http.MethodGet, "/teams/" + uuid.NewString(), http.StatusNotFound},
		{http.MethodGet, "/imports", http.StatusOK},
		{http.MethodPost, "/teams", http.StatusMethodNotAllowed},
		{http.MethodGet, "/players", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHealthBody(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, newLogger(nil, "nonsense").GetLevel())
	assert.Equal(t, zerolog.DebugLevel, newLogger(nil, "DEBUG").GetLevel())
}
