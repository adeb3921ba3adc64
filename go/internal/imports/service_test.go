package imports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubRuns struct {
	limit int
}

func (s *stubRuns) ListRecent(_ context.Context, limit int) ([]models.ImportRun, error) {
	s.limit = limit
	return []models.ImportRun{}, nil
}

func TestListRunsLimit(t *testing.T) {
	cases := []struct {
		query string
		code  int
		limit int
	}{
		{"", http.StatusOK, 20},
		{"?limit=5", http.StatusOK, 5},
		{"?limit=1000", http.StatusOK, 100},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=ten", http.StatusBadRequest, 0},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			runs := &stubRuns{}
			r := mux.NewRouter()
			NewService(runs, zerolog.Nop()).Register(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/imports"+tc.query, nil))

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.limit, runs.limit)
			if tc.code == http.StatusOK {
				assert.JSONEq(t, `{"imports":[]}`, rec.Body.String())
			}
		})
	}
}
