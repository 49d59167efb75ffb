package automation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/domain/workflow"
	"github.com/garyjia/lodging-sap/internal/host"
	"github.com/garyjia/lodging-sap/internal/statusline"
	"github.com/garyjia/lodging-sap/internal/workbook"
)

const requisitionTransaction = "ME51N"

// Grid columns of the requisition item overview
const (
	colItem          = "BNFPO"
	colAccount       = "KNTTP"
	colPurchGroup    = "EKGRP"
	colShortText     = "TXZ01"
	colTracking      = "BEDNR"
	colMaterialGroup = "WGBEZ"
	colItemCategory  = "EPSTP"
)

// RunRequisition enters every row as one line of a single requisition and
// saves it once. Any failure aborts the batch before the workbook is touched;
// on success every row receives the same requisition number.
func RunRequisition(ctx context.Context, rc *RunContext, rows []entity.DataRow) (*entity.RunSummary, error) {
	summary := newSummary(entity.FlowRequisition, rows)
	if err := rc.validate(entity.FlowRequisition); err != nil {
		return summary, err
	}
	if len(rows) == 0 {
		return summary, fmt.Errorf("%w: workbook has no rows", entity.ErrValidation)
	}

	logger := rc.Logger.With(zap.String("flow", entity.FlowRequisition.String()))

	// next counts the rows already entered; the loop saves once it reaches len(rows)
	next := 0
	loop := workflow.NewRowLoop(func(context.Context) bool { return next < len(rows) })
	loop.OnTransition(func(from, to workflow.State, trigger workflow.Trigger) {
		logger.Debug("Row loop transition",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.String("trigger", trigger.String()),
			zap.Int("row", next))
	})

	abort := func(row entity.DataRow, err error) (*entity.RunSummary, error) {
		_ = loop.Fire(ctx, workflow.TriggerFail)
		logger.Error("Requisition aborted, nothing written back",
			zap.Int("row_index", row.Index),
			zap.String("invoice", row.InvoiceNumber),
			zap.Error(err))
		for _, r := range rows {
			if r.Index == row.Index {
				summary.Record(failed(r, err))
			} else {
				summary.Record(skipped(r, "requisition aborted"))
			}
		}
		return summary, err
	}

	// every line is built before the host sees the first one
	lines := make([]entity.RequisitionLine, len(rows))
	for i, row := range rows {
		line, err := entity.BuildLine(row, i+1)
		if err != nil {
			return abort(row, err)
		}
		lines[i] = line
	}

	s := newScreen(ctx, rc)
	s.transaction(requisitionTransaction)
	s.enter()
	s.press(host.FieldReqOverview)
	if s.failed() {
		return abort(rows[0], s.err)
	}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return abort(row, err)
		}

		line := lines[i]

		if err := loop.Fire(ctx, workflow.TriggerClassify); err != nil {
			return abort(row, err)
		}

		if err := loop.Fire(ctx, workflow.TriggerPopulate); err != nil {
			return abort(row, err)
		}
		populateRequisitionLine(s, i, line)

		if err := loop.Fire(ctx, workflow.TriggerOpenAssignment); err != nil {
			return abort(row, err)
		}
		assignCostObject(s, line.Assignment)

		if err := loop.Fire(ctx, workflow.TriggerConfirm); err != nil {
			return abort(row, err)
		}
		confirmRequisitionLine(s, line)

		if s.failed() {
			return abort(row, fmt.Errorf("line %d: %w", line.ItemNumber, s.err))
		}
		next = line.ItemNumber
		if err := loop.Fire(ctx, workflow.TriggerAdvance); err != nil {
			return abort(row, err)
		}

		logger.Info("Requisition line entered",
			zap.Int("line", line.ItemNumber),
			zap.String("category", line.Assignment.Category.String()),
			zap.String("invoice", row.InvoiceNumber))
	}

	last := rows[len(rows)-1]
	if err := loop.Fire(ctx, workflow.TriggerSave); err != nil {
		return abort(last, err)
	}

	s.press(host.FieldSave)
	s.settle()
	text := s.status()
	if s.failed() {
		return abort(last, fmt.Errorf("save requisition: %w", s.err))
	}

	capture, err := statusline.Requisition.Parse(text)
	if err != nil {
		return abort(last, err)
	}

	today := rc.captureDate()
	records := make([]entity.DocumentCaptureRecord, len(rows))
	for i, row := range rows {
		records[i] = entity.DocumentCaptureRecord{
			SheetRow:       row.SheetRow,
			DocumentNumber: capture.DocumentNumber,
			ItemNumber:     i + 1,
			CreatedOn:      today,
			CompletedOn:    today,
		}
	}

	if err := rc.Store.WriteBack(records, workbook.RequisitionColumns); err != nil {
		for _, row := range rows {
			summary.Record(failed(row, err))
		}
		return summary, err
	}

	for _, row := range rows {
		summary.Record(succeeded(row, capture.DocumentNumber))
	}

	logger.Info("Requisition saved",
		zap.Int64("document_number", capture.DocumentNumber),
		zap.Int("lines", len(rows)))
	return summary, nil
}

// populateRequisitionLine fills grid row i and the line's service detail
func populateRequisitionLine(s *screen, i int, line entity.RequisitionLine) {
	s.on(host.FieldReqItemGrid, "fill grid row", func(grid host.Element) error {
		cells := []struct{ column, value string }{
			{colItem, fmt.Sprint(line.ItemNumber)},
			{colAccount, line.AccountCategory},
			{colPurchGroup, line.PurchasingGroup},
			{colShortText, line.ShortText},
			{colTracking, line.TrackingNumber},
			{colMaterialGroup, line.MaterialGroup},
			{colItemCategory, line.ItemCategory},
		}
		for _, c := range cells {
			if err := grid.ModifyCell(i, c.column, c.value); err != nil {
				return fmt.Errorf("cell %s: %w", c.column, err)
			}
		}
		if err := grid.SetCurrentCell(i, colItemCategory); err != nil {
			return err
		}
		return grid.PressEnter()
	})
	s.settle()

	s.set(host.FieldReqServiceText, line.ServiceText)
	s.set(host.FieldReqServiceQty, line.Quantity)
	s.set(host.FieldReqServiceUnit, line.Unit)
	s.set(host.FieldReqServicePric, line.UnitPrice)
	s.enter()
}

// assignCostObject fills the account assignment dialog and closes it
func assignCostObject(s *screen, co entity.CostObject) {
	switch co.Category {
	case entity.CategoryCostCenter:
		s.set(host.FieldAssignCostCenter, co.CostCenter)
	case entity.CategoryOrderOperation:
		s.set(host.FieldAssignOrder, co.OrderID)
		s.set(host.FieldAssignOperation, co.Operation)
	case entity.CategoryProject:
		s.set(host.FieldAssignProject, co.PositionID)
	}
	s.press(host.FieldPopupConfirm)
}

// confirmRequisitionLine sets the item tax code on the customer data tab.
// The inner tax tab stays selected after the first line.
func confirmRequisitionLine(s *screen, line entity.RequisitionLine) {
	s.choose(host.FieldReqCustomerTab)
	if line.ItemNumber == 1 {
		s.choose(host.FieldReqTaxTab)
	}
	s.set(host.FieldReqTaxCode, line.TaxCode)
	s.enter()
}
