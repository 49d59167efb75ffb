package workflow

// State is a step of the per-row processing loop
type State string

const (
	StateInit              State = "INIT"
	StateClassifyRow       State = "CLASSIFY_ROW"
	StatePopulateFields    State = "POPULATE_FIELDS"
	StateAccountAssignment State = "ACCOUNT_ASSIGNMENT"
	StateConfirm           State = "CONFIRM"
	StateNextRow           State = "NEXT_ROW"
	StateSaveBatch         State = "SAVE_BATCH"
	StateFailed            State = "FAILED"
)

var validStates = map[State]bool{
	StateInit:              true,
	StateClassifyRow:       true,
	StatePopulateFields:    true,
	StateAccountAssignment: true,
	StateConfirm:           true,
	StateNextRow:           true,
	StateSaveBatch:         true,
	StateFailed:            true,
}

var terminalStates = map[State]bool{
	StateSaveBatch: true,
	StateFailed:    true,
}

// IsTerminal returns true if no further transitions are allowed
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is known
func (s State) IsValid() bool {
	return validStates[s]
}
