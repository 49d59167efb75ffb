package entity

import "time"

// Flow identifies one of the batch operations against the host
type Flow string

const (
	FlowRequisition  Flow = "requisition"
	FlowOrder        Flow = "order"
	FlowServiceEntry Flow = "service-entry"
	FlowDocuments    Flow = "documents"
)

// Flows lists every supported flow
var Flows = []Flow{FlowRequisition, FlowOrder, FlowServiceEntry, FlowDocuments}

// IsValid returns true if the flow is known
func (f Flow) IsValid() bool {
	for _, known := range Flows {
		if f == known {
			return true
		}
	}
	return false
}

func (f Flow) String() string {
	return string(f)
}

// Date layouts used by the host screens and by the workbook write-back
const (
	HostDateLayout    = "02.01.2006"
	CaptureDateLayout = "02/01/2006"
)

// DocumentCaptureRecord is written back to the workbook after a successful save
type DocumentCaptureRecord struct {
	SheetRow       int
	DocumentNumber int64
	ItemNumber     int // requisition only; 0 means not written
	CreatedOn      string
	CompletedOn    string
	Status         string
}

// Row outcome statuses
const (
	RowStatusSucceeded = "SUCCEEDED"
	RowStatusFailed    = "FAILED"
	RowStatusSkipped   = "SKIPPED"
)

// RowOutcome records what happened to one row during a run
type RowOutcome struct {
	RowIndex       int    `json:"row_index"`
	SheetRow       int    `json:"sheet_row"`
	Invoice        string `json:"invoice"`
	Status         string `json:"status"`
	DocumentNumber int64  `json:"document_number,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Run statuses
const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// RunSummary is reported to the operator at the end of every run
type RunSummary struct {
	ID           int64        `json:"id"`
	RunID        string       `json:"run_id"`
	Flow         Flow         `json:"flow"`
	WorkbookPath string       `json:"workbook_path"`
	Status       string       `json:"status"`
	Total        int          `json:"total"`
	Succeeded    int          `json:"succeeded"`
	Failed       int          `json:"failed"`
	Error        string       `json:"error,omitempty"`
	Rows         []RowOutcome `json:"rows,omitempty"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
}

// Record appends a row outcome and updates the counters
func (s *RunSummary) Record(o RowOutcome) {
	s.Rows = append(s.Rows, o)
	switch o.Status {
	case RowStatusSucceeded:
		s.Succeeded++
	case RowStatusFailed, RowStatusSkipped:
		s.Failed++
	}
}
