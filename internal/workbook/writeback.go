package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

// Columns names the spreadsheet columns a flow writes its capture into.
// Empty entries are not written.
type Columns struct {
	Number    string
	Item      string
	Created   string
	Completed string
	Status    string
}

var (
	RequisitionColumns  = Columns{Number: "AT", Item: "AU", Created: "AS", Completed: "AV"}
	OrderColumns        = Columns{Number: "AY", Created: "AX", Completed: "AZ", Status: "BA"}
	ServiceEntryColumns = Columns{Number: "BB", Created: "BC", Completed: "BD"}
	DocumentsColumns    = Columns{Number: "BF", Created: "BG", Completed: "BH"}
)

// ColumnsFor returns the write-back columns of a flow
func ColumnsFor(flow entity.Flow) (Columns, error) {
	switch flow {
	case entity.FlowRequisition:
		return RequisitionColumns, nil
	case entity.FlowOrder:
		return OrderColumns, nil
	case entity.FlowServiceEntry:
		return ServiceEntryColumns, nil
	case entity.FlowDocuments:
		return DocumentsColumns, nil
	default:
		return Columns{}, fmt.Errorf("unknown flow %q", flow)
	}
}

// WriteBack stores the records in their rows and saves the file.
// Writing the same records twice leaves the same cell values.
func (w *Workbook) WriteBack(records []entity.DocumentCaptureRecord, cols Columns) error {
	for _, rec := range records {
		if rec.SheetRow < 2 {
			return fmt.Errorf("%w: record targets header row %d", entity.ErrValidation, rec.SheetRow)
		}

		if err := w.setCell(cols.Number, rec.SheetRow, rec.DocumentNumber); err != nil {
			return err
		}
		if cols.Item != "" && rec.ItemNumber > 0 {
			if err := w.setCell(cols.Item, rec.SheetRow, rec.ItemNumber); err != nil {
				return err
			}
		}
		if err := w.setCell(cols.Created, rec.SheetRow, rec.CreatedOn); err != nil {
			return err
		}
		if err := w.setCell(cols.Completed, rec.SheetRow, rec.CompletedOn); err != nil {
			return err
		}
		if cols.Status != "" && rec.Status != "" {
			if err := w.setCell(cols.Status, rec.SheetRow, rec.Status); err != nil {
				return err
			}
		}
	}

	if err := w.Save(); err != nil {
		return err
	}

	w.logger.Info("Document numbers written back",
		zap.String("path", w.path),
		zap.Int("records", len(records)))
	return nil
}

// Save persists the workbook to its original path
func (w *Workbook) Save() error {
	if err := w.file.Save(); err != nil {
		return &entity.PersistenceError{Path: w.path, Err: err}
	}
	return nil
}

func (w *Workbook) setCell(col string, row int, value interface{}) error {
	if col == "" {
		return nil
	}
	cell, err := excelize.JoinCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell %s%d: %w", col, row, err)
	}
	if err := w.file.SetCellValue(w.sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", cell, err)
	}
	return nil
}
