package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ImportRunStatus is the final state of an import run
type ImportRunStatus string

const (
	ImportRunSucceeded ImportRunStatus = "succeeded"
	ImportRunInvalid   ImportRunStatus = "invalid"
	ImportRunFailed    ImportRunStatus = "failed"
)

// ImportRun is a recorded execution of the spreadsheet import
type ImportRun struct {
	ID             uuid.UUID       `json:"id"`
	Source         string          `json:"source"`
	Status         ImportRunStatus `json:"status"`
	Error          *string         `json:"error,omitempty"`
	TeamsCreated   int             `json:"teams_created"`
	TeamsUpdated   int             `json:"teams_updated"`
	TeamsSkipped   int             `json:"teams_skipped"`
	PlayersCreated int             `json:"players_created"`
	PlayersUpdated int             `json:"players_updated"`
	PlayersSkipped int             `json:"players_skipped"`
	Report         json.RawMessage `json:"report,omitempty"`
	StartedAt      time.Time       `json:"started_at"`
	FinishedAt     *time.Time      `json:"finished_at,omitempty"`
}
