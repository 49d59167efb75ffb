package automation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
	"github.com/garyjia/lodging-sap/internal/statusline"
	"github.com/garyjia/lodging-sap/internal/workbook"
)

// Fixed service entry sheet values
const (
	serviceEntryTransaction = "ML81N"

	serviceShortTextPrefix = "PGTO "
	serviceSupplierMax     = 30 // characters of the supplier name kept in the short text
	serviceContact         = "SOLANO"
	serviceHeaderText      = "PGTO HOSPEDAGEM"
)

// RunServiceEntry registers one service entry sheet per row against the row's
// purchase order. The first failing row stops the batch; rows saved before it
// keep their written numbers.
func RunServiceEntry(ctx context.Context, rc *RunContext, rows []entity.DataRow) (*entity.RunSummary, error) {
	summary := newSummary(entity.FlowServiceEntry, rows)
	if err := rc.validate(entity.FlowServiceEntry); err != nil {
		return summary, err
	}

	err := eachRow(ctx, rc, summary, rows, workbook.ServiceEntryColumns, createServiceEntry, nil)

	s := newScreen(ctx, rc)
	s.press(host.FieldExit)
	return summary, err
}

func createServiceEntry(ctx context.Context, rc *RunContext, row entity.DataRow) (statusline.Capture, error) {
	s := newScreen(ctx, rc)

	s.transaction(serviceEntryTransaction)
	s.enter()
	s.set(host.FieldFRSOrder, row.PurchaseOrderID)
	s.key(host.Popup, host.VKeyEnter)
	s.press(host.FieldFRSCreate)
	s.choose(host.FieldFRSAcceptTab)
	s.choose(host.FieldFRSDataTab)

	s.set(host.FieldFRSShortText, ServiceShortText(row.SupplierName))
	s.set(host.FieldFRSInvoice, row.InvoiceNumber)
	s.set(host.FieldFRSLocation, row.Domicile)
	s.set(host.FieldFRSPeriodFrom, row.StayStart)
	s.set(host.FieldFRSPeriodTo, row.StayEnd)
	s.set(host.FieldFRSContact, serviceContact)
	s.set(host.FieldFRSDocDate, row.IssueDate)
	s.set(host.FieldFRSReference, row.InvoiceNumber)
	s.set(host.FieldFRSHeaderText, serviceHeaderText)

	s.press(host.FieldFRSSelectLines)
	s.press(host.FieldPopupConfirm)
	s.press(host.FieldFRSAccept)
	s.press(host.FieldSave)
	s.press(host.FieldFRSSaveYes)
	s.press(host.FieldFRSSaveContinue)

	s.settle()
	text := s.status()
	if s.failed() {
		return statusline.Capture{}, s.err
	}
	return statusline.ServiceEntry.Parse(text)
}

// ServiceShortText is "PGTO " plus at most 30 characters of the supplier name
func ServiceShortText(supplier string) string {
	r := []rune(supplier)
	if len(r) > serviceSupplierMax {
		r = r[:serviceSupplierMax]
	}
	return serviceShortTextPrefix + string(r)
}

type rowFunc func(ctx context.Context, rc *RunContext, row entity.DataRow) (statusline.Capture, error)

// afterSaveFunc runs once a row's document is saved and written back
type afterSaveFunc func(ctx context.Context, rc *RunContext, row entity.DataRow, capture statusline.Capture) error

// eachRow runs fn for every row and writes each capture back as soon as it is
// known. It stops at the first failure and marks the remaining rows skipped.
// A failing after step is reported on the row but does not stop the batch,
// since the document already exists.
func eachRow(ctx context.Context, rc *RunContext, summary *entity.RunSummary, rows []entity.DataRow, cols workbook.Columns, fn rowFunc, after afterSaveFunc) error {
	logger := rc.Logger.With(zap.String("flow", summary.Flow.String()))

	for i, row := range rows {
		err := ctx.Err()

		var capture statusline.Capture
		if err == nil {
			capture, err = fn(ctx, rc, row)
		}
		if err == nil {
			today := rc.captureDate()
			err = rc.Store.WriteBack([]entity.DocumentCaptureRecord{{
				SheetRow:       row.SheetRow,
				DocumentNumber: capture.DocumentNumber,
				CreatedOn:      today,
				CompletedOn:    today,
				Status:         capture.Status,
			}}, cols)
		}

		if err != nil {
			logger.Error("Row failed, stopping batch",
				zap.Int("row_index", row.Index),
				zap.String("invoice", row.InvoiceNumber),
				zap.Error(err))
			summary.Record(failed(row, err))
			for _, rest := range rows[i+1:] {
				summary.Record(skipped(rest, fmt.Sprintf("batch stopped at row %d", row.Index)))
			}
			return err
		}

		outcome := succeeded(row, capture.DocumentNumber)
		if after != nil {
			if err := after(ctx, rc, row, capture); err != nil {
				logger.Error("Follow-up step failed",
					zap.Int("row_index", row.Index),
					zap.Int64("document_number", capture.DocumentNumber),
					zap.Error(err))
				outcome.Error = err.Error()
			}
		}
		summary.Record(outcome)

		logger.Info("Document saved",
			zap.Int("row_index", row.Index),
			zap.Int64("document_number", capture.DocumentNumber))
	}
	return nil
}
