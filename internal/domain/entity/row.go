package entity

// DataRow is one normalized workbook row.
// Dates are dd.mm.yyyy strings and NetAmount uses a decimal comma.
type DataRow struct {
	Index    int // 0-based position among data rows
	SheetRow int // 1-based spreadsheet row (header is row 1)

	SupplierTaxID     string
	IssueDate         string
	RequisitionNumber string
	RequisitionLine   string
	EmployeeID        string
	PassengerName     string
	StayStart         string
	StayEnd           string
	TravelRequestID   string
	ReservationID     *string
	InvoiceNumber     string
	CostObjectCode    string
	NetAmount         string
	PurchaseOrderID   string
	SupplierName      string
	Domicile          string
	FRSID             string
	SST               string
}

// HasReservation reports whether the row references a resource reservation
func (r DataRow) HasReservation() bool {
	return r.ReservationID != nil && *r.ReservationID != ""
}

// Column headers as they appear in the source workbook
const (
	HeaderSupplierTaxID     = "CNPJ_Fornecedor"
	HeaderIssueDate         = "Data Emissao"
	HeaderRequisitionNumber = "RC"
	HeaderRequisitionLine   = "N° LINHA DA RC"
	HeaderEmployeeID        = "Matricula"
	HeaderPassengerName     = "Passageiro"
	HeaderStayStart         = "Data In"
	HeaderStayEnd           = "Data Out"
	HeaderTravelRequestID   = "Requisicao de Viagem"
	HeaderReservationID     = "Reserva de Recurso"
	HeaderInvoiceNumber     = "Nota fiscal"
	HeaderCostObjectCode    = "Centro de Custo"
	HeaderNetAmount         = "Liquido a Pagar"
	HeaderPurchaseOrderID   = "PC"
	HeaderSupplierName      = "Fornecedor"
	HeaderDomicile          = "DOMICILIO"
	HeaderFRSID             = "FRS"
	HeaderSST               = "SST"
)

// RequiredHeaders lists every column the loader expects, in row order
var RequiredHeaders = []string{
	HeaderSupplierTaxID,
	HeaderIssueDate,
	HeaderRequisitionNumber,
	HeaderRequisitionLine,
	HeaderEmployeeID,
	HeaderPassengerName,
	HeaderStayStart,
	HeaderStayEnd,
	HeaderTravelRequestID,
	HeaderReservationID,
	HeaderInvoiceNumber,
	HeaderCostObjectCode,
	HeaderNetAmount,
	HeaderPurchaseOrderID,
	HeaderSupplierName,
	HeaderDomicile,
	HeaderFRSID,
	HeaderSST,
}
