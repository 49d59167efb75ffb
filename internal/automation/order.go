package automation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
	"github.com/garyjia/lodging-sap/internal/statusline"
	"github.com/garyjia/lodging-sap/internal/workbook"
)

// Fixed purchase order values
const (
	orderCreateCommand  = "/NME21N"
	orderDisplayCommand = "/NME23N"

	orderSearchExclude  = "X"
	orderIncoterm       = "ZSE"
	orderItemTaxCode    = "D0"
	orderPlannedDays    = "1"
	orderDeliveryOffset = 30 // days from today
	orderModality       = "DP1"
	orderPenalty        = "0"
	orderObjectType     = "S"
	orderBuyer          = "SD0H"
	orderReservationKey = "45510003"

	gosToolbox          = "%GOS_TOOLBOX"
	gosCreateAttach     = "%GOS_PCATTA_CREA"
	invoiceFileFmt      = "NF %s.pdf"
	serviceSheetFileFmt = "FRS %s.pdf"
)

// orderFiscalKeys are inserted into the fiscal data dialog of every order
var orderFiscalKeys = []string{"M359", "T3HV", "TFEX"}

// RunOrder creates one purchase order per row. A failing row is logged and
// the batch moves on; each saved order is written back immediately and the
// row's invoice PDF is attached to it.
func RunOrder(ctx context.Context, rc *RunContext, rows []entity.DataRow) (*entity.RunSummary, error) {
	summary := newSummary(entity.FlowOrder, rows)
	if err := rc.validate(entity.FlowOrder); err != nil {
		return summary, err
	}

	logger := rc.Logger.With(zap.String("flow", entity.FlowOrder.String()))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		capture, err := createOrder(ctx, rc, row)
		if err != nil {
			logger.Error("Order row failed",
				zap.Int("row_index", row.Index),
				zap.String("invoice", row.InvoiceNumber),
				zap.Error(err))
			if errors.Is(err, entity.ErrElementNotFound) {
				summary.Record(skipped(row, err.Error()))
			} else {
				summary.Record(failed(row, err))
			}
			continue
		}

		today := rc.captureDate()
		record := entity.DocumentCaptureRecord{
			SheetRow:       row.SheetRow,
			DocumentNumber: capture.DocumentNumber,
			CreatedOn:      today,
			CompletedOn:    today,
			Status:         capture.Status,
		}
		if err := rc.Store.WriteBack([]entity.DocumentCaptureRecord{record}, workbook.OrderColumns); err != nil {
			summary.Record(failed(row, err))
			return summary, err
		}

		outcome := succeeded(row, capture.DocumentNumber)
		if err := attachInvoice(ctx, rc, row); err != nil {
			logger.Error("Invoice not attached to order",
				zap.Int64("document_number", capture.DocumentNumber),
				zap.String("invoice", row.InvoiceNumber),
				zap.Error(err))
			outcome.Error = fmt.Sprintf("attachment: %v", err)
		}
		summary.Record(outcome)

		logger.Info("Order saved",
			zap.Int("row_index", row.Index),
			zap.Int64("document_number", capture.DocumentNumber),
			zap.String("status", capture.Status))
	}

	s := newScreen(ctx, rc)
	s.press(host.FieldExit)
	if s.failed() {
		logger.Warn("Could not leave the order screen", zap.Error(s.err))
	}

	return summary, nil
}

// createOrder enters and saves the purchase order of one row
func createOrder(ctx context.Context, rc *RunContext, row entity.DataRow) (statusline.Capture, error) {
	s := newScreen(ctx, rc)

	s.command(orderCreateCommand)

	// vendor search help by tax id
	s.focusStart(host.FieldOrderSuperfield)
	s.key(host.MainWindow, host.VKeyF4)
	s.press(host.FieldOrderSearchMore)
	s.choose(host.FieldOrderSearchTab)
	s.set(host.FieldOrderSearchExclude, orderSearchExclude)
	s.press(host.FieldOrderSearchRun)
	s.set(host.FieldOrderVendorTaxID, row.SupplierTaxID)
	s.focus(host.FieldOrderVendorTaxID)
	s.key(host.Popup, host.VKeyEnter)
	s.key(host.Popup, host.VKeyEnter)

	s.set(host.FieldOrderDocDate, row.IssueDate)
	s.press(host.FieldOrderOverview)
	s.set(host.FieldOrderPurchGroup, entity.PurchasingGroup)
	s.choose(host.FieldOrderDeliveryTab)
	s.set(host.FieldOrderIncoterm, orderIncoterm)
	s.set(host.FieldOrderReqNumber, row.RequisitionNumber)
	s.set(host.FieldOrderReqLine, row.RequisitionLine)
	s.enter()

	deliveryDate := rc.Clock().AddDate(0, 0, orderDeliveryOffset).Format(entity.HostDateLayout)
	s.set(host.FieldOrderTaxCode, orderItemTaxCode)
	s.choose(host.FieldOrderDeliveryTimeTb)
	s.set(host.FieldOrderPlannedDeliv, orderPlannedDays)
	s.choose(host.FieldOrderScheduleTab)
	s.set(host.FieldOrderDeliveryDate, deliveryDate)
	s.enter()

	s.press(host.FieldOrderOverview)
	s.choose(host.FieldOrderCustomerTab)
	s.set(host.FieldOrderModality, orderModality)
	s.set(host.FieldOrderPenalty, orderPenalty)
	s.set(host.FieldOrderObjectType, orderObjectType)
	s.set(host.FieldOrderBuyer, orderBuyer)
	s.enter()

	s.press(host.FieldOrderFiscalButton)
	for _, key := range orderFiscalKeys {
		s.press(host.FieldOrderFiscalInsert)
		s.set(host.FieldOrderFiscalKey, key)
		s.press(host.FieldOrderFiscalKeyOK)
	}
	s.press(host.FieldPopupExecute)
	s.press(host.FieldPopupExecute)

	s.choose(host.FieldOrderHeaderTaxTab)
	s.set(host.FieldOrderHeaderTaxCode, entity.LineTaxCode)
	s.choose(host.FieldOrderTextsTab)
	s.set(host.FieldOrderHeaderText, OrderHeaderText(row))

	if row.HasReservation() {
		reservation := *row.ReservationID
		s.choose(host.FieldOrderAccountTab)
		s.press(host.FieldOrderAccountButton)
		s.set(host.FieldAssignReservation, reservation)
		s.focusStart(host.FieldAssignReservationItem)
		s.key(host.Popup, host.VKeyF4)
		s.set(host.FieldOrderResvSearchID, reservation)
		s.set(host.FieldOrderResvSearchKey, orderReservationKey)
		s.key(host.Popup2, host.VKeyEnter)
		s.key(host.Popup2, host.VKeyEnter)
		s.key(host.Popup, host.VKeyEnter)
		s.press(host.FieldSave)
		s.press(host.FieldOrderSaveConfirm)
	} else {
		s.press(host.FieldSave)
	}

	s.settle()
	text := s.status()
	if s.failed() {
		return statusline.Capture{}, s.err
	}
	return statusline.Order.Parse(text)
}

// OrderHeaderText is the free text stored on each lodging order
func OrderHeaderText(row entity.DataRow) string {
	return fmt.Sprintf("%s - %s - %s - %s a %s",
		row.EmployeeID, row.PassengerName, row.TravelRequestID, row.StayStart, row.StayEnd)
}

// attachInvoice opens the last order in display mode and uploads the row's invoice
func attachInvoice(ctx context.Context, rc *RunContext, row entity.DataRow) error {
	name := fmt.Sprintf(invoiceFileFmt, row.InvoiceNumber)
	if rc.Attachments != nil {
		if err := rc.Attachments.Check(filepath.Join(rc.InvoiceDir, name)); err != nil {
			return err
		}
	}

	s := newScreen(ctx, rc)
	s.command(orderDisplayCommand)
	s.on(host.FieldOrderTitleToolbox, "open attachment menu", func(el host.Element) error {
		if err := el.PressContextButton(gosToolbox); err != nil {
			return err
		}
		return el.SelectContextMenuItem(gosCreateAttach)
	})
	s.set(host.FieldAttachPath, rc.InvoiceDir)
	s.set(host.FieldAttachFile, name)
	s.press(host.FieldPopupConfirm)
	s.settle()
	return s.err
}
