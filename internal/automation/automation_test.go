package automation

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
	"github.com/garyjia/lodging-sap/internal/host/scripted"
	"github.com/garyjia/lodging-sap/internal/workbook"
)

const (
	requisitionSaved = "Req. compra criada sob o nº 4500012345"
	orderSaved       = "Pedido de compra nac. criado sob o nº 4500098765"
	orderSaved2      = "Pedido de compra nac. criado sob o nº 4500098766"
	serviceSaved     = "Folha registro servico criada: 1000123456 gravada"
	serviceSaved2    = "Folha registro servico criada: 1000123457 gravada"
	documentSaved    = "Protocolo 0000456789 gravado"
	hostError        = "Preencher campo obrigatorio"
)

type storeWrite struct {
	records []entity.DocumentCaptureRecord
	cols    workbook.Columns
}

// memoryStore records write-backs instead of saving a file
type memoryStore struct {
	writes []storeWrite
	err    error
}

func (m *memoryStore) WriteBack(records []entity.DocumentCaptureRecord, cols workbook.Columns) error {
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, storeWrite{records: records, cols: cols})
	return nil
}

func (m *memoryStore) records() []entity.DocumentCaptureRecord {
	var all []entity.DocumentCaptureRecord
	for _, w := range m.writes {
		all = append(all, w.records...)
	}
	return all
}

// recordingChecker accepts every file unless failing is set
type recordingChecker struct {
	paths   []string
	failing error
}

func (c *recordingChecker) Check(path string) error {
	c.paths = append(c.paths, path)
	return c.failing
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
}

func newRunContext(session *scripted.Session, store *memoryStore) *RunContext {
	return &RunContext{
		Session:         session,
		Registry:        host.NewRegistry(),
		Store:           store,
		Logger:          zap.NewNop(),
		Clock:           fixedClock,
		InvoiceDir:      filepath.Join("share", "NF"),
		ServiceSheetDir: filepath.Join("share", "FRS"),
	}
}

func lodgingRows(codes ...string) []entity.DataRow {
	rows := make([]entity.DataRow, len(codes))
	for i, code := range codes {
		rows[i] = entity.DataRow{
			Index:             i,
			SheetRow:          i + 2,
			SupplierTaxID:     "12345678000199",
			IssueDate:         "01.10.2026",
			RequisitionNumber: "0010012345",
			RequisitionLine:   "10",
			EmployeeID:        "1234567",
			PassengerName:     "MARIA SILVA",
			StayStart:         "05.10.2026",
			StayEnd:           "07.10.2026",
			TravelRequestID:   "RV-88",
			InvoiceNumber:     "452" + string(rune('1'+i)),
			CostObjectCode:    code,
			NetAmount:         "350,75",
			PurchaseOrderID:   "4500098765",
			SupplierName:      "HOTEL CENTRAL DE CONVENCOES E EVENTOS LTDA",
			Domicile:          "SP 3550308",
			FRSID:             "1000123456",
		}
	}
	return rows
}

// path returns the first candidate of a field, which the scripted session always finds
func path(f host.Field) string {
	return host.NewRegistry().Candidates(f)[0]
}

func TestForFlow(t *testing.T) {
	for _, f := range entity.Flows {
		fn, err := ForFlow(f)
		require.NoError(t, err, f.String())
		assert.NotNil(t, fn)
	}

	_, err := ForFlow("pedido")
	assert.Error(t, err)
}

func TestRunContext_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(rc *RunContext)
		flow    entity.Flow
		wantErr error
	}{
		{"no session", func(rc *RunContext) { rc.Session = nil }, entity.FlowRequisition, entity.ErrSessionUnavailable},
		{"order without invoice folder", func(rc *RunContext) { rc.InvoiceDir = "" }, entity.FlowOrder, entity.ErrValidation},
		{"documents without service sheet folder", func(rc *RunContext) { rc.ServiceSheetDir = "" }, entity.FlowDocuments, entity.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := newRunContext(scripted.NewSession(), &memoryStore{})
			tt.mutate(rc)
			assert.True(t, errors.Is(rc.validate(tt.flow), tt.wantErr))
		})
	}

	t.Run("defaults", func(t *testing.T) {
		rc := &RunContext{Session: scripted.NewSession(), Registry: host.NewRegistry(), Store: &memoryStore{}}
		require.NoError(t, rc.validate(entity.FlowServiceEntry))
		assert.NotNil(t, rc.Logger)
		assert.NotNil(t, rc.Clock)
	})
}

func TestRunRequisition_ThreeCategories(t *testing.T) {
	session := scripted.NewSession().QueueStatus(requisitionSaved)
	store := &memoryStore{}
	rc := newRunContext(session, store)

	summary, err := RunRequisition(context.Background(), rc, lodgingRows("1002000", "1500000123ABCD", "PROJ-99"))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, []string{"ME51N"}, session.Transactions())

	grid := path(host.FieldReqItemGrid)
	assert.Equal(t, "K", session.Cell(grid, 0, "KNTTP"))
	assert.Equal(t, "N", session.Cell(grid, 1, "KNTTP"))
	assert.Equal(t, "P", session.Cell(grid, 2, "KNTTP"))
	assert.Equal(t, "3", session.Cell(grid, 2, "BNFPO"))
	assert.Equal(t, "HOSPEDAGEM NF 4522", session.Cell(grid, 1, "TXZ01"))
	assert.Equal(t, "094300", session.Cell(grid, 2, "WGBEZ"))
	assert.Equal(t, "F85", session.Cell(grid, 0, "EKGRP"))

	assert.Equal(t, "1002000", session.Value(path(host.FieldAssignCostCenter)))
	assert.Equal(t, "1500000123", session.Value(path(host.FieldAssignOrder)))
	assert.Equal(t, "ABCD", session.Value(path(host.FieldAssignOperation)))
	assert.Equal(t, "PROJ-99", session.Value(path(host.FieldAssignProject)))
	assert.Equal(t, "350,75", session.Value(path(host.FieldReqServicePric)))
	assert.Equal(t, "8.8", session.Value(path(host.FieldReqTaxCode)))

	// the status bar is read once for the whole batch
	assert.Len(t, session.ActionsOn("status"), 1)
	assert.Len(t, session.ActionsOn("current_cell"), 3)

	require.Len(t, store.writes, 1)
	assert.Equal(t, workbook.RequisitionColumns, store.writes[0].cols)
	records := store.writes[0].records
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, int64(4500012345), rec.DocumentNumber)
		assert.Equal(t, i+1, rec.ItemNumber)
		assert.Equal(t, i+2, rec.SheetRow)
		assert.Equal(t, "17/10/2026", rec.CreatedOn)
		assert.Equal(t, "17/10/2026", rec.CompletedOn)
	}
}

func TestRunRequisition_AbortsWithoutWriteBack(t *testing.T) {
	tests := []struct {
		name    string
		session func() *scripted.Session
		codes   []string
		wantErr error
	}{
		{
			name:    "malformed cost object",
			session: func() *scripted.Session { return scripted.NewSession().QueueStatus(requisitionSaved) },
			codes:   []string{"1002000", "12345", "PROJ-99"},
			wantErr: entity.ErrValidation,
		},
		{
			name: "tax code field missing in every layout",
			session: func() *scripted.Session {
				return scripted.NewSession().Missing(host.NewRegistry().Candidates(host.FieldReqTaxCode)...)
			},
			codes:   []string{"1002000", "PROJ-99"},
			wantErr: entity.ErrElementNotFound,
		},
		{
			name:    "unexpected status message",
			session: func() *scripted.Session { return scripted.NewSession().QueueStatus(hostError) },
			codes:   []string{"1002000"},
			wantErr: entity.ErrStatusLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			summary, err := RunRequisition(context.Background(), newRunContext(tt.session(), store), lodgingRows(tt.codes...))

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, store.writes)
			assert.Equal(t, 0, summary.Succeeded)
			assert.Equal(t, len(tt.codes), summary.Failed)
		})
	}
}

func TestRunRequisition_InvalidRowNeverReachesHost(t *testing.T) {
	session := scripted.NewSession().QueueStatus(requisitionSaved)
	store := &memoryStore{}

	summary, err := RunRequisition(context.Background(), newRunContext(session, store), lodgingRows("1002000", "PROJ-99", "12345"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidation))
	assert.Empty(t, session.Actions())
	assert.Empty(t, store.writes)

	require.Len(t, summary.Rows, 3)
	assert.Equal(t, entity.RowStatusSkipped, summary.Rows[0].Status)
	assert.Equal(t, entity.RowStatusSkipped, summary.Rows[1].Status)
	assert.Equal(t, entity.RowStatusFailed, summary.Rows[2].Status)
}

func TestRunRequisition_GridFailureNeverSaves(t *testing.T) {
	session := scripted.NewSession().
		QueueStatus(requisitionSaved).
		FailOn(path(host.FieldReqItemGrid), errors.New("grid locked"))
	store := &memoryStore{}

	_, err := RunRequisition(context.Background(), newRunContext(session, store), lodgingRows("1002000"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid locked")
	assert.Empty(t, session.ActionsOn("status"))
	assert.Empty(t, store.writes)
}

func TestRunRequisition_PersistenceErrorIsReturned(t *testing.T) {
	session := scripted.NewSession().QueueStatus(requisitionSaved)
	store := &memoryStore{err: &entity.PersistenceError{Path: "lodging.xlsx", Err: errors.New("locked")}}

	summary, err := RunRequisition(context.Background(), newRunContext(session, store), lodgingRows("1002000"))

	assert.True(t, errors.Is(err, entity.ErrPersistence))
	assert.Equal(t, 1, summary.Failed)
}

func TestRunRequisition_EmptyWorkbook(t *testing.T) {
	_, err := RunRequisition(context.Background(), newRunContext(scripted.NewSession(), &memoryStore{}), nil)
	assert.True(t, errors.Is(err, entity.ErrValidation))
}

func TestRunOrder_ContinuesAfterRowFailure(t *testing.T) {
	session := scripted.NewSession().QueueStatus(orderSaved, hostError, orderSaved2)
	store := &memoryStore{}
	checker := &recordingChecker{}
	rc := newRunContext(session, store)
	rc.Attachments = checker

	rows := lodgingRows("1002000", "1002000", "1002000")
	reservation := "7654321"
	rows[2].ReservationID = &reservation

	summary, err := RunOrder(context.Background(), rc, rows)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, entity.RowStatusFailed, summary.Rows[1].Status)
	assert.Contains(t, summary.Rows[1].Error, "unparseable status line")

	records := store.records()
	require.Len(t, records, 2)
	assert.Equal(t, int64(4500098765), records[0].DocumentNumber)
	assert.Equal(t, 2, records[0].SheetRow)
	assert.Equal(t, int64(4500098766), records[1].DocumentNumber)
	assert.Equal(t, 4, records[1].SheetRow)
	assert.Equal(t, "criado", records[1].Status)
	assert.Equal(t, 0, records[1].ItemNumber)
	for _, w := range store.writes {
		assert.Equal(t, workbook.OrderColumns, w.cols)
	}

	// the reservation branch confirms the save pop-up
	assert.Equal(t, reservation, session.Value(path(host.FieldAssignReservation)))
	assert.Equal(t, "45510003", session.Value(path(host.FieldOrderResvSearchKey)))
	confirmPresses := 0
	for _, a := range session.ActionsOn("press") {
		if a.Path == path(host.FieldOrderSaveConfirm) {
			confirmPresses++
		}
	}
	assert.Equal(t, 1, confirmPresses)

	assert.Equal(t, "16.11.2026", session.Value(path(host.FieldOrderDeliveryDate)))
	assert.Equal(t, "1234567 - MARIA SILVA - RV-88 - 05.10.2026 a 07.10.2026", session.Value(path(host.FieldOrderHeaderText)))
	assert.Equal(t, "TFEX", session.Value(path(host.FieldOrderFiscalKey)))

	// invoices are attached only to saved orders
	assert.Equal(t, []string{
		filepath.Join("share", "NF", "NF 4521.pdf"),
		filepath.Join("share", "NF", "NF 4523.pdf"),
	}, checker.paths)
	assert.Equal(t, "NF 4523.pdf", session.Value(path(host.FieldAttachFile)))
	assert.Len(t, session.ActionsOn("context_item"), 2)
}

func TestRunOrder_SkipsRowsWithoutLayout(t *testing.T) {
	session := scripted.NewSession().Missing(host.NewRegistry().Candidates(host.FieldOrderSuperfield)...)
	store := &memoryStore{}

	summary, err := RunOrder(context.Background(), newRunContext(session, store), lodgingRows("1002000", "1002000"))
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
	for _, row := range summary.Rows {
		assert.Equal(t, entity.RowStatusSkipped, row.Status)
		assert.Contains(t, row.Error, "order.superfield")
	}
	assert.Empty(t, store.writes)
}

func TestRunOrder_AttachmentFailureKeepsOrder(t *testing.T) {
	session := scripted.NewSession().QueueStatus(orderSaved)
	store := &memoryStore{}
	rc := newRunContext(session, store)
	rc.Attachments = &recordingChecker{failing: errors.New("NF 4521.pdf not found")}

	summary, err := RunOrder(context.Background(), rc, lodgingRows("1002000"))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Succeeded)
	assert.Contains(t, summary.Rows[0].Error, "attachment")
	assert.Len(t, store.writes, 1)
	assert.Empty(t, session.ActionsOn("context_button"))
}

func TestRunOrder_StopsOnPersistenceError(t *testing.T) {
	session := scripted.NewSession().QueueStatus(orderSaved, orderSaved2)
	store := &memoryStore{err: &entity.PersistenceError{Path: "lodging.xlsx", Err: errors.New("locked")}}

	summary, err := RunOrder(context.Background(), newRunContext(session, store), lodgingRows("1002000", "1002000"))

	assert.True(t, errors.Is(err, entity.ErrPersistence))
	assert.Len(t, summary.Rows, 1)
}

func TestRunOrder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := RunOrder(ctx, newRunContext(scripted.NewSession(), &memoryStore{}), lodgingRows("1002000"))

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, summary.Rows)
}

func TestRunServiceEntry(t *testing.T) {
	session := scripted.NewSession().QueueStatus(serviceSaved, serviceSaved2)
	store := &memoryStore{}

	summary, err := RunServiceEntry(context.Background(), newRunContext(session, store), lodgingRows("1002000", "1002000"))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, []string{"ML81N", "ML81N"}, session.Transactions())
	assert.Equal(t, "PGTO HOTEL CENTRAL DE CONVENCOES E ", session.Value(path(host.FieldFRSShortText)))
	assert.Equal(t, "SOLANO", session.Value(path(host.FieldFRSContact)))
	assert.Equal(t, "PGTO HOSPEDAGEM", session.Value(path(host.FieldFRSHeaderText)))
	assert.Equal(t, "4500098765", session.Value(path(host.FieldFRSOrder)))

	records := store.records()
	require.Len(t, records, 2)
	assert.Equal(t, int64(1000123456), records[0].DocumentNumber)
	assert.Equal(t, int64(1000123457), records[1].DocumentNumber)
	assert.Equal(t, workbook.ServiceEntryColumns, store.writes[0].cols)
}

func TestRunServiceEntry_StopsAtFirstFailure(t *testing.T) {
	session := scripted.NewSession().QueueStatus(serviceSaved, hostError, serviceSaved2)
	store := &memoryStore{}

	summary, err := RunServiceEntry(context.Background(), newRunContext(session, store), lodgingRows("1002000", "1002000", "1002000"))

	assert.True(t, errors.Is(err, entity.ErrStatusLine))
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, entity.RowStatusSkipped, summary.Rows[2].Status)
	assert.Len(t, store.records(), 1)
}

func TestServiceShortText(t *testing.T) {
	assert.Equal(t, "PGTO HOTEL", ServiceShortText("HOTEL"))
	assert.Equal(t, "PGTO POUSADA SÃO JOÃO DO ALTO DA SE", ServiceShortText("POUSADA SÃO JOÃO DO ALTO DA SERRA VERDE"))
}

func TestRunDocuments(t *testing.T) {
	session := scripted.NewSession().QueueStatus(documentSaved)
	store := &memoryStore{}
	checker := &recordingChecker{}
	rc := newRunContext(session, store)
	rc.Attachments = checker

	summary, err := RunDocuments(context.Background(), rc, lodgingRows("1002000"))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, []string{"MLGD", "MLGDC"}, session.Transactions())
	assert.Equal(t, "000111", session.Value(path(host.FieldGDTaker)))
	assert.Equal(t, "1000123456", session.Value(path(host.FieldGDFRS)))
	assert.Equal(t, "NF 4521.pdf", session.Value(path(host.FieldAttachFile2)))
	assert.Equal(t, "456789", session.Value(path(host.FieldGDCProtocol)))
	assert.Equal(t, "FRS 4521.pdf", session.Value(path(host.FieldAttachFile)))
	assert.Equal(t, filepath.Join("share", "FRS"), session.Value(path(host.FieldAttachPath)))
	assert.Len(t, session.ActionsOn("select_rows"), 1)

	assert.Equal(t, []string{
		filepath.Join("share", "NF", "NF 4521.pdf"),
		filepath.Join("share", "FRS", "FRS 4521.pdf"),
	}, checker.paths)

	records := store.records()
	require.Len(t, records, 1)
	assert.Equal(t, int64(456789), records[0].DocumentNumber)
	assert.Equal(t, workbook.DocumentsColumns, store.writes[0].cols)
}

func TestRunDocuments_MissingInvoiceStopsBatch(t *testing.T) {
	session := scripted.NewSession().QueueStatus(documentSaved)
	rc := newRunContext(session, &memoryStore{})
	rc.Attachments = &recordingChecker{failing: errors.New("attachment file not found")}

	summary, err := RunDocuments(context.Background(), rc, lodgingRows("1002000", "1002000"))

	require.Error(t, err)
	assert.Equal(t, 2, summary.Failed)
	assert.Empty(t, session.Transactions())
}
