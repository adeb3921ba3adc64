package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/teamsheet/go/internal/importer"
	"github.com/mcdev12/teamsheet/go/internal/models"
)

// ImportCompleted summarises a finished run. Row details stay in the run history.
type ImportCompleted struct {
	RunID      uuid.UUID              `json:"runId"`
	Source     string                 `json:"source"`
	Status     models.ImportRunStatus `json:"status"`
	Error      string                 `json:"error,omitempty"`
	Teams      importer.SheetSummary  `json:"teams"`
	Players    importer.SheetSummary  `json:"players"`
	StartedAt  time.Time              `json:"startedAt"`
	FinishedAt time.Time              `json:"finishedAt"`
}

// NewImportCompleted builds the event for the outcome of importer.Run
func NewImportCompleted(report *importer.Report, runErr error) ImportCompleted {
	ev := ImportCompleted{
		RunID:      report.RunID,
		Source:     report.Source,
		Status:     importer.RunStatus(runErr),
		Teams:      report.Teams,
		Players:    report.Players,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}
	if runErr != nil {
		ev.Error = runErr.Error()
	}
	return ev
}
