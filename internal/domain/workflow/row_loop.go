package workflow

import "context"

// NewRowLoop builds the machine that drives a multi-line requisition.
// hasMore reports whether rows remain after the current one; it picks
// between CLASSIFY_ROW and SAVE_BATCH when leaving NEXT_ROW.
func NewRowLoop(hasMore GuardFunc) StateMachine {
	b := NewBuilder()

	b.Configure(StateInit).
		Permit(TriggerClassify, StateClassifyRow).
		Permit(TriggerFail, StateFailed)

	b.Configure(StateClassifyRow).
		Permit(TriggerPopulate, StatePopulateFields).
		Permit(TriggerFail, StateFailed)

	b.Configure(StatePopulateFields).
		Permit(TriggerOpenAssignment, StateAccountAssignment).
		Permit(TriggerFail, StateFailed)

	b.Configure(StateAccountAssignment).
		Permit(TriggerConfirm, StateConfirm).
		Permit(TriggerFail, StateFailed)

	b.Configure(StateConfirm).
		Permit(TriggerAdvance, StateNextRow).
		Permit(TriggerFail, StateFailed)

	b.Configure(StateNextRow).
		PermitIf(TriggerClassify, StateClassifyRow, hasMore).
		PermitIf(TriggerSave, StateSaveBatch, not(hasMore)).
		Permit(TriggerFail, StateFailed)

	return b.Build(StateInit)
}

func not(g GuardFunc) GuardFunc {
	if g == nil {
		return func(_ context.Context) bool { return false }
	}
	return func(ctx context.Context) bool { return !g(ctx) }
}
