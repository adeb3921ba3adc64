package imports

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mcdev12/teamsheet/go/internal/httpjson"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/rs/zerolog"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// RunLister provides recent import runs
type RunLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.ImportRun, error)
}

// Service serves the import history over HTTP
type Service struct {
	runs   RunLister
	logger zerolog.Logger
}

// NewService creates a new import history HTTP service
func NewService(runs RunLister, logger zerolog.Logger) *Service {
	return &Service{runs: runs, logger: logger}
}

// Register mounts the import routes on r
func (s *Service) Register(r *mux.Router) {
	r.HandleFunc("/imports", s.ListRuns).Methods(http.MethodGet)
}

// ListRuns handles GET /imports?limit=N
func (s *Service) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			httpjson.Error(w, s.logger, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = min(parsed, maxListLimit)
	}

	runs, err := s.runs.ListRecent(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list import runs")
		httpjson.Error(w, s.logger, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, s.logger, http.StatusOK, map[string]any{"imports": runs})
}
