// Package workbook loads lodging rows from an .xlsx file and writes captured
// document numbers back into it.
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

// Workbook is an open spreadsheet bound to its active sheet
type Workbook struct {
	path   string
	sheet  string
	file   *excelize.File
	logger *zap.Logger
}

// Open opens the workbook at path and selects the active sheet
func Open(path string, logger *zap.Logger) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Workbook{path: path, sheet: sheet, file: f, logger: logger}, nil
}

// Path returns the file the workbook was opened from
func (w *Workbook) Path() string {
	return w.path
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Rows reads every data row below the header, matching columns by header name.
// Values are normalized into the formats the host screens expect.
func (w *Workbook) Rows() ([]entity.DataRow, error) {
	raw, err := w.file.GetRows(w.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", w.sheet, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", entity.ErrValidation, w.sheet)
	}

	index := make(map[string]int, len(raw[0]))
	for i, h := range raw[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, h := range entity.RequiredHeaders {
		if _, ok := index[h]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", entity.ErrValidation, h)
		}
	}

	body := trimEmptyTail(raw[1:])
	rows := make([]entity.DataRow, 0, len(body))
	for i, cells := range body {
		get := func(header string) string {
			col := index[header]
			if col >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[col])
		}

		row, err := w.buildRow(i, get)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	w.logger.Info("Workbook rows loaded",
		zap.String("path", w.path),
		zap.String("sheet", w.sheet),
		zap.Int("rows", len(rows)))

	return rows, nil
}

func (w *Workbook) buildRow(i int, get func(string) string) (entity.DataRow, error) {
	row := entity.DataRow{
		Index:             i,
		SheetRow:          i + 2,
		SupplierTaxID:     get(entity.HeaderSupplierTaxID),
		RequisitionNumber: get(entity.HeaderRequisitionNumber),
		RequisitionLine:   get(entity.HeaderRequisitionLine),
		EmployeeID:        normalizeEmployeeID(get(entity.HeaderEmployeeID)),
		PassengerName:     get(entity.HeaderPassengerName),
		TravelRequestID:   get(entity.HeaderTravelRequestID),
		InvoiceNumber:     get(entity.HeaderInvoiceNumber),
		CostObjectCode:    get(entity.HeaderCostObjectCode),
		PurchaseOrderID:   get(entity.HeaderPurchaseOrderID),
		SupplierName:      get(entity.HeaderSupplierName),
		Domicile:          get(entity.HeaderDomicile),
		FRSID:             get(entity.HeaderFRSID),
		SST:               get(entity.HeaderSST),
	}

	if v := get(entity.HeaderReservationID); v != "" {
		row.ReservationID = &v
	}

	dates := []struct {
		header string
		dst    *string
	}{
		{entity.HeaderIssueDate, &row.IssueDate},
		{entity.HeaderStayStart, &row.StayStart},
		{entity.HeaderStayEnd, &row.StayEnd},
	}
	for _, d := range dates {
		v, err := normalizeDate(get(d.header))
		if err != nil {
			return entity.DataRow{}, fmt.Errorf("%w: row %d column %q: %v", entity.ErrValidation, row.SheetRow, d.header, err)
		}
		*d.dst = v
	}

	amount, err := normalizeAmount(get(entity.HeaderNetAmount))
	if err != nil {
		return entity.DataRow{}, fmt.Errorf("%w: row %d column %q: %v", entity.ErrValidation, row.SheetRow, entity.HeaderNetAmount, err)
	}
	row.NetAmount = amount

	return row, nil
}

func trimEmptyTail(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isEmptyRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
