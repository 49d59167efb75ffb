// Package automation drives the host screens for the lodging flows:
// requisition, purchase order, service entry sheet and payment documents.
package automation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
	"github.com/garyjia/lodging-sap/internal/workbook"
)

// DefaultSettleDelay is waited after actions that make the host re-render,
// unless the session can report readiness itself.
const DefaultSettleDelay = time.Second

// RowStore receives captured document numbers
type RowStore interface {
	WriteBack(records []entity.DocumentCaptureRecord, cols workbook.Columns) error
}

// AttachmentChecker verifies a file before it is uploaded to the host
type AttachmentChecker interface {
	Check(path string) error
}

// RunContext carries everything one flow run needs.
// Nothing is read from package state; every collaborator is passed here.
type RunContext struct {
	Session  host.Session
	Registry *host.Registry
	Store    RowStore
	Logger   *zap.Logger

	// Clock returns "today" for capture dates and delivery dates
	Clock func() time.Time

	// InvoiceDir holds "NF <invoice>.pdf" files attached to orders and documents
	InvoiceDir string

	// ServiceSheetDir holds "FRS <invoice>.pdf" files attached to document records
	ServiceSheetDir string

	SettleDelay time.Duration
	Attachments AttachmentChecker
}

// FlowFunc runs one flow over the rows
type FlowFunc func(ctx context.Context, rc *RunContext, rows []entity.DataRow) (*entity.RunSummary, error)

// ForFlow returns the runner of a flow
func ForFlow(flow entity.Flow) (FlowFunc, error) {
	switch flow {
	case entity.FlowRequisition:
		return RunRequisition, nil
	case entity.FlowOrder:
		return RunOrder, nil
	case entity.FlowServiceEntry:
		return RunServiceEntry, nil
	case entity.FlowDocuments:
		return RunDocuments, nil
	default:
		return nil, fmt.Errorf("unknown flow %q", flow)
	}
}

func (rc *RunContext) validate(flow entity.Flow) error {
	if rc == nil {
		return errors.New("run context is required")
	}
	if rc.Session == nil {
		return fmt.Errorf("%w: no session in run context", entity.ErrSessionUnavailable)
	}
	if rc.Registry == nil {
		return errors.New("locator registry is required")
	}
	if rc.Store == nil {
		return errors.New("row store is required")
	}
	if rc.Logger == nil {
		rc.Logger = zap.NewNop()
	}
	if rc.Clock == nil {
		rc.Clock = time.Now
	}

	switch flow {
	case entity.FlowOrder:
		if rc.InvoiceDir == "" {
			return fmt.Errorf("%w: invoice folder is required for the %s flow", entity.ErrValidation, flow)
		}
	case entity.FlowDocuments:
		if rc.InvoiceDir == "" || rc.ServiceSheetDir == "" {
			return fmt.Errorf("%w: invoice and service sheet folders are required for the %s flow", entity.ErrValidation, flow)
		}
	}
	return nil
}

// captureDate is today's date as written to the workbook
func (rc *RunContext) captureDate() string {
	return rc.Clock().Format(entity.CaptureDateLayout)
}

func newSummary(flow entity.Flow, rows []entity.DataRow) *entity.RunSummary {
	return &entity.RunSummary{
		Flow:  flow,
		Total: len(rows),
		Rows:  make([]entity.RowOutcome, 0, len(rows)),
	}
}

func succeeded(row entity.DataRow, number int64) entity.RowOutcome {
	return entity.RowOutcome{
		RowIndex:       row.Index,
		SheetRow:       row.SheetRow,
		Invoice:        row.InvoiceNumber,
		Status:         entity.RowStatusSucceeded,
		DocumentNumber: number,
	}
}

func failed(row entity.DataRow, err error) entity.RowOutcome {
	return entity.RowOutcome{
		RowIndex: row.Index,
		SheetRow: row.SheetRow,
		Invoice:  row.InvoiceNumber,
		Status:   entity.RowStatusFailed,
		Error:    err.Error(),
	}
}

func skipped(row entity.DataRow, reason string) entity.RowOutcome {
	return entity.RowOutcome{
		RowIndex: row.Index,
		SheetRow: row.SheetRow,
		Invoice:  row.InvoiceNumber,
		Status:   entity.RowStatusSkipped,
		Error:    reason,
	}
}
