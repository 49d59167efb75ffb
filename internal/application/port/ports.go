// Package port declares what the run service needs from the outside world.
package port

import (
	"context"
	"database/sql"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
	"github.com/garyjia/lodging-sap/internal/workbook"
)

// RunRepository stores the run ledger
type RunRepository interface {
	Create(tx *sql.Tx, run *entity.RunSummary) error
	Finish(tx *sql.Tx, run *entity.RunSummary) error
	AddRows(tx *sql.Tx, runID int64, outcomes []entity.RowOutcome) error
	GetByRunID(runID string) (*entity.RunSummary, error)
	List(limit int) ([]*entity.RunSummary, error)
}

// TransactionManager runs fn inside one database transaction
type TransactionManager interface {
	WithTransaction(fn func(*sql.Tx) error) error
}

// Workbook is an open lodging spreadsheet
type Workbook interface {
	Path() string
	Rows() ([]entity.DataRow, error)
	WriteBack(records []entity.DocumentCaptureRecord, cols workbook.Columns) error
	Close() error
}

// WorkbookOpener opens the workbook a run works on
type WorkbookOpener interface {
	Open(path string) (Workbook, error)
}

// SessionAcquirer hands out a logged-in host session for a SAP user
type SessionAcquirer interface {
	Acquire(ctx context.Context, user string) (host.Session, error)
}

// RunNotifier reports a finished run to the operators
type RunNotifier interface {
	NotifyRun(ctx context.Context, run *entity.RunSummary) error
}
