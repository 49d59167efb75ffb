package repository

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/pkg/database"
)

func newTestRepo(t *testing.T) (*RunRepository, *database.DB) {
	t.Helper()
	db, err := database.New(database.Config{Path: filepath.Join(t.TempDir(), "ledger.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db, zap.NewNop()))
	return NewRunRepository(db.DB, zap.NewNop()), db
}

func newRun(id string, flow entity.Flow, started time.Time) *entity.RunSummary {
	return &entity.RunSummary{
		RunID:        id,
		Flow:         flow,
		WorkbookPath: "/data/hospedagem.xlsx",
		Status:       entity.RunStatusRunning,
		Total:        2,
		StartedAt:    started,
	}
}

func TestRunRepository_Lifecycle(t *testing.T) {
	repo, db := newTestRepo(t)
	started := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	run := newRun("run-1", entity.FlowOrder, started)
	require.NoError(t, repo.Create(nil, run))
	assert.NotZero(t, run.ID)

	finished := started.Add(5 * time.Minute)
	run.Status = entity.RunStatusCompleted
	run.Succeeded = 1
	run.Failed = 1
	run.FinishedAt = &finished

	outcomes := []entity.RowOutcome{
		{RowIndex: 0, SheetRow: 2, Invoice: "4521", Status: entity.RowStatusSucceeded, DocumentNumber: 4500098765},
		{RowIndex: 1, SheetRow: 3, Invoice: "4522", Status: entity.RowStatusFailed, Error: "field superfield: no locator matched"},
	}

	// same transaction the service uses
	require.NoError(t, db.WithTransaction(func(tx *sql.Tx) error {
		if err := repo.AddRows(tx, run.ID, outcomes); err != nil {
			return err
		}
		return repo.Finish(tx, run)
	}))

	got, err := repo.GetByRunID("run-1")
	require.NoError(t, err)
	assert.Equal(t, entity.FlowOrder, got.Flow)
	assert.Equal(t, entity.RunStatusCompleted, got.Status)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Succeeded)
	assert.Equal(t, 1, got.Failed)
	assert.True(t, started.Equal(got.StartedAt))
	require.NotNil(t, got.FinishedAt)
	assert.True(t, finished.Equal(*got.FinishedAt))
	assert.Equal(t, outcomes, got.Rows)
}

func TestRunRepository_GetByRunIDNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.GetByRunID("missing")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestRunRepository_FinishUnknown(t *testing.T) {
	repo, _ := newTestRepo(t)

	run := newRun("ghost", entity.FlowDocuments, time.Now())
	run.ID = 99
	err := repo.Finish(nil, run)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestRunRepository_ListNewestFirst(t *testing.T) {
	repo, _ := newTestRepo(t)
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	for i, flow := range []entity.Flow{entity.FlowRequisition, entity.FlowOrder, entity.FlowServiceEntry} {
		run := newRun(string(flow), flow, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Create(nil, run))
	}

	runs, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, entity.FlowServiceEntry, runs[0].Flow)
	assert.Equal(t, entity.FlowOrder, runs[1].Flow)
	assert.Nil(t, runs[0].FinishedAt)
	assert.Empty(t, runs[0].Rows)
}

func TestRunRepository_DuplicateRunID(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Create(nil, newRun("dup", entity.FlowOrder, time.Now())))
	assert.Error(t, repo.Create(nil, newRun("dup", entity.FlowOrder, time.Now())))
}
