package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a state transition is not allowed
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrGuardFailed is returned when every guarded transition rejected the trigger
	ErrGuardFailed = errors.New("guard condition failed")

	// ErrTerminalState is returned when firing from SAVE_BATCH or FAILED
	ErrTerminalState = errors.New("state machine already finished")
)
