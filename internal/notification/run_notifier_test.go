package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

type mockSender struct {
	idType, id, text string
	err              error
}

func (m *mockSender) SendText(ctx context.Context, receiveIDType, receiveID, text string) error {
	m.idType, m.id, m.text = receiveIDType, receiveID, text
	return m.err
}

func sampleRun() *entity.RunSummary {
	started := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	finished := started.Add(95 * time.Second)
	return &entity.RunSummary{
		RunID:        "b7c1",
		Flow:         entity.FlowRequisition,
		WorkbookPath: "/data/hospedagem.xlsx",
		Status:       entity.RunStatusCompleted,
		Total:        3,
		Succeeded:    2,
		Failed:       1,
		Rows: []entity.RowOutcome{
			{SheetRow: 2, Invoice: "4521", Status: entity.RowStatusSucceeded, DocumentNumber: 4500012345},
			{SheetRow: 3, Invoice: "4522", Status: entity.RowStatusSucceeded, DocumentNumber: 4500012345},
			{SheetRow: 4, Invoice: "4523", Status: entity.RowStatusSkipped, Error: "batch aborted"},
		},
		StartedAt:  started,
		FinishedAt: &finished,
	}
}

func TestFormatRun(t *testing.T) {
	text := FormatRun(sampleRun())

	assert.Equal(t, strings.Join([]string{
		"Lodging run requisition: COMPLETED",
		"Workbook: /data/hospedagem.xlsx",
		"Rows: 3 total, 2 succeeded, 1 failed",
		"Documents: 4500012345",
		"Row 4 (NF 4523) SKIPPED: batch aborted",
		"Duration: 1m35s",
	}, "\n"), text)
}

func TestFormatRun_CapsFailureList(t *testing.T) {
	run := &entity.RunSummary{Flow: entity.FlowOrder, Status: entity.RunStatusCompleted}
	for i := 0; i < maxListedFailures+3; i++ {
		run.Record(entity.RowOutcome{SheetRow: i + 2, Invoice: fmt.Sprint(4500 + i), Status: entity.RowStatusFailed, Error: "x"})
	}
	run.Total = len(run.Rows)

	text := FormatRun(run)
	assert.Contains(t, text, "... and 3 more")
	assert.Equal(t, maxListedFailures, strings.Count(text, "FAILED: x"))
}

func TestRunNotifier_NotifyRun(t *testing.T) {
	sender := &mockSender{}
	n := NewRunNotifier(sender, "chat_id", "oc_lodging", nil)

	require.NoError(t, n.NotifyRun(context.Background(), sampleRun()))
	assert.Equal(t, "chat_id", sender.idType)
	assert.Equal(t, "oc_lodging", sender.id)
	assert.Contains(t, sender.text, "Lodging run requisition")

	sender.err = errors.New("token expired")
	assert.Error(t, n.NotifyRun(context.Background(), sampleRun()))
}
