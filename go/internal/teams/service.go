package teams

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mcdev12/teamsheet/go/internal/httpjson"
	"github.com/rs/zerolog"
)

// TeamsApp defines what the service layer needs from the teams application
type TeamsApp interface {
	ListTeams(ctx context.Context) ([]TeamSummary, error)
	GetTeamDetail(ctx context.Context, id uuid.UUID) (*TeamDetail, error)
}

// Service serves the team directory over HTTP
type Service struct {
	app    TeamsApp
	logger zerolog.Logger
}

// NewService creates a new teams HTTP service
func NewService(app TeamsApp, logger zerolog.Logger) *Service {
	return &Service{
		app:    app,
		logger: logger,
	}
}

// Register mounts the team routes on r
func (s *Service) Register(r *mux.Router) {
	r.HandleFunc("/teams", s.ListTeams).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id}", s.GetTeam).Methods(http.MethodGet)
}

// ListTeams handles GET /teams
func (s *Service) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.app.ListTeams(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list teams")
		httpjson.Error(w, s.logger, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, s.logger, http.StatusOK, map[string]any{"teams": teams})
}

// GetTeam handles GET /teams/{id}
func (s *Service) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpjson.Error(w, s.logger, http.StatusBadRequest, "invalid team id")
		return
	}

	detail, err := s.app.GetTeamDetail(r.Context(), id)
	if errors.Is(err, ErrTeamNotFound) {
		httpjson.Error(w, s.logger, http.StatusNotFound, ErrTeamNotFound.Error())
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("team_id", id.String()).Msg("failed to get team")
		httpjson.Error(w, s.logger, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, s.logger, http.StatusOK, detail)
}
