package automation

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
	"github.com/garyjia/lodging-sap/internal/statusline"
	"github.com/garyjia/lodging-sap/internal/workbook"
)

// Fixed document management values
const (
	documentsTransaction     = "MLGD"
	documentsViewTransaction = "MLGDC"

	documentsTaker   = "000111"
	documentsCompany = "01"
	firstGridRow     = "0"
)

// RunDocuments registers one payment document per row with the invoice PDF
// attached, writes its number back, then attaches the service sheet PDF to it.
// Like the service entry flow, the first failing row stops the batch.
func RunDocuments(ctx context.Context, rc *RunContext, rows []entity.DataRow) (*entity.RunSummary, error) {
	summary := newSummary(entity.FlowDocuments, rows)
	if err := rc.validate(entity.FlowDocuments); err != nil {
		return summary, err
	}

	err := eachRow(ctx, rc, summary, rows, workbook.DocumentsColumns, createDocument, attachServiceSheet)

	s := newScreen(ctx, rc)
	s.press(host.FieldExit)
	return summary, err
}

func createDocument(ctx context.Context, rc *RunContext, row entity.DataRow) (statusline.Capture, error) {
	invoiceFile := fmt.Sprintf(invoiceFileFmt, row.InvoiceNumber)
	if rc.Attachments != nil {
		if err := rc.Attachments.Check(filepath.Join(rc.InvoiceDir, invoiceFile)); err != nil {
			return statusline.Capture{}, err
		}
	}

	s := newScreen(ctx, rc)

	s.transaction(documentsTransaction)
	s.enter()
	s.focus(host.FieldGDServiceRadio)
	s.choose(host.FieldGDServiceRadio)
	s.set(host.FieldGDTaker, documentsTaker)
	s.set(host.FieldGDInvoice, row.InvoiceNumber)
	s.set(host.FieldGDDocDate, row.IssueDate)
	s.set(host.FieldGDTaxID, row.SupplierTaxID)
	s.set(host.FieldGDJurisdiction, row.Domicile)
	s.set(host.FieldGDFRS, row.FRSID)
	s.press(host.FieldExecute)

	// attach the invoice from the local file system
	s.press(host.FieldGDAttachYes)
	s.choose(host.FieldLocalFile)
	s.press(host.FieldLocalFileOK)
	s.focusStart(host.FieldAttachPath)
	s.key(host.Popup, host.VKeyF4)
	s.set(host.FieldAttachPath2, rc.InvoiceDir)
	s.set(host.FieldAttachFile2, invoiceFile)
	s.press(host.FieldAttachConfirm)
	s.press(host.FieldPopupConfirm)

	s.settle()
	text := s.status()
	if s.failed() {
		return statusline.Capture{}, s.err
	}
	return statusline.Documents.Parse(text)
}

// attachServiceSheet finds the saved document in the display transaction and
// uploads "FRS <invoice>.pdf" to it
func attachServiceSheet(ctx context.Context, rc *RunContext, row entity.DataRow, capture statusline.Capture) error {
	name := fmt.Sprintf(serviceSheetFileFmt, row.InvoiceNumber)
	if rc.Attachments != nil {
		if err := rc.Attachments.Check(filepath.Join(rc.ServiceSheetDir, name)); err != nil {
			return err
		}
	}

	s := newScreen(ctx, rc)

	s.transaction(documentsViewTransaction)
	s.enter()
	s.set(host.FieldGDCCompany, documentsCompany)
	s.set(host.FieldGDCProtocol, strconv.FormatInt(capture.DocumentNumber, 10))
	s.press(host.FieldExecute)
	s.on(host.FieldGDCGrid, "select row", func(el host.Element) error { return el.SetSelectedRows(firstGridRow) })
	s.press(host.FieldServicesMenu)
	s.choose(host.FieldLocalFile)
	s.press(host.FieldLocalFileOK)
	s.set(host.FieldAttachPath, rc.ServiceSheetDir)
	s.set(host.FieldAttachFile, name)
	s.press(host.FieldPopupConfirm)
	s.settle()
	return s.err
}
