package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/teamsheet/go/internal/importer"
	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	started := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	report := &importer.Report{
		RunID:      uuid.New(),
		Source:     "/data.xlsx",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Teams:      importer.SheetSummary{Created: 2},
		Players:    importer.SheetSummary{Updated: 1, Skipped: 1},
	}

	event := NewImportCompleted(report, nil)
	msg, err := buildMessage(DefaultJetStreamConfig(), event)
	require.NoError(t, err)

	assert.Equal(t, "teamsheet.imports.completed", msg.Subject)
	assert.Equal(t, EventImportCompleted, msg.Header.Get("Event-Type"))
	assert.Equal(t, report.RunID.String(), msg.Header.Get("Run-ID"))
	assert.Equal(t, "succeeded", msg.Header.Get("Run-Status"))

	var decoded ImportCompleted
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, event.RunID, decoded.RunID)
	assert.Equal(t, importer.SheetSummary{Updated: 1, Skipped: 1}, decoded.Players)
	assert.Empty(t, decoded.Error)
}

func TestNewImportCompletedCarriesError(t *testing.T) {
	report := &importer.Report{RunID: uuid.New(), Source: "/data.xlsx"}

	event := NewImportCompleted(report, errors.Join(importer.ErrSourceNotFound, errors.New("no such file")))
	assert.Equal(t, models.ImportRunInvalid, event.Status)
	assert.Contains(t, event.Error, "no such file")
}

func TestStreamSubjects(t *testing.T) {
	p := &JetStreamPublisher{config: DefaultJetStreamConfig()}
	sc := p.streamConfig()
	assert.Equal(t, []string{"teamsheet.imports.>"}, sc.Subjects)
	assert.True(t, isStreamConfigEqual(sc, p.streamConfig()))
}
