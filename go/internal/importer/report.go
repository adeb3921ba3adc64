package importer

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is what happened to a single spreadsheet row
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
)

// RowResult is the outcome of one row
type RowResult struct {
	Sheet    string   `json:"sheet"`
	Row      int      `json:"row"`
	Label    string   `json:"label"`
	Outcome  Outcome  `json:"outcome"`
	Reason   string   `json:"reason,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// SheetSummary tallies row outcomes for one sheet
type SheetSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Total is the number of data rows seen on the sheet
func (s SheetSummary) Total() int {
	return s.Created + s.Updated + s.Skipped
}

func (s *SheetSummary) count(o Outcome) {
	switch o {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// Report represents the result of an import run
type Report struct {
	RunID      uuid.UUID    `json:"run_id"`
	Source     string       `json:"source"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Teams      SheetSummary `json:"teams"`
	Players    SheetSummary `json:"players"`
	Rows       []RowResult  `json:"rows"`
}

// Duration is how long the run took
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Skipped returns only the rows that were not imported
func (r *Report) Skipped() []RowResult {
	var out []RowResult
	for _, row := range r.Rows {
		if row.Outcome == OutcomeSkipped {
			out = append(out, row)
		}
	}
	return out
}

func (r *Report) add(res RowResult, summary *SheetSummary) {
	summary.count(res.Outcome)
	r.Rows = append(r.Rows, res)
}
