package entity

import "fmt"

// Fixed values written on every lodging requisition line
const (
	PurchasingGroup = "F85"
	ItemCategory    = "D" // service
	MaterialGroup   = "094300"
	LineQuantity    = "1"
	LineUnit        = "UN"
	LineTaxCode     = "8.8"

	shortTextPrefix = "HOSPEDAGEM NF "
)

// RequisitionLine holds every value the host must receive for one requisition item
type RequisitionLine struct {
	ItemNumber      int
	AccountCategory string
	PurchasingGroup string
	ShortText       string
	TrackingNumber  string
	MaterialGroup   string
	ItemCategory    string

	ServiceText string
	Quantity    string
	Unit        string
	UnitPrice   string
	TaxCode     string

	Assignment CostObject
}

// ShortText builds the line description for an invoice
func ShortText(invoice string) string {
	return shortTextPrefix + invoice
}

// BuildLine derives the requisition line for a row. It is pure: the same
// row and line id always produce the same line.
func BuildLine(row DataRow, lineID int) (RequisitionLine, error) {
	if lineID < 1 {
		return RequisitionLine{}, &ValidationError{
			RowIndex: row.Index,
			Code:     row.CostObjectCode,
			Reason:   fmt.Sprintf("line id must be 1-based, got %d", lineID),
		}
	}

	co, err := ClassifyRow(row)
	if err != nil {
		return RequisitionLine{}, err
	}

	text := ShortText(row.InvoiceNumber)
	return RequisitionLine{
		ItemNumber:      lineID,
		AccountCategory: co.Category.AccountCategory(),
		PurchasingGroup: PurchasingGroup,
		ShortText:       text,
		TrackingNumber:  row.InvoiceNumber,
		MaterialGroup:   MaterialGroup,
		ItemCategory:    ItemCategory,
		ServiceText:     text,
		Quantity:        LineQuantity,
		Unit:            LineUnit,
		UnitPrice:       row.NetAmount,
		TaxCode:         LineTaxCode,
		Assignment:      co,
	}, nil
}
