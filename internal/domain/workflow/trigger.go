package workflow

// Trigger moves the row loop from one state to the next
type Trigger string

const (
	TriggerClassify       Trigger = "CLASSIFY"
	TriggerPopulate       Trigger = "POPULATE"
	TriggerOpenAssignment Trigger = "OPEN_ASSIGNMENT"
	TriggerConfirm        Trigger = "CONFIRM"
	TriggerAdvance        Trigger = "ADVANCE"
	TriggerSave           Trigger = "SAVE"
	TriggerFail           Trigger = "FAIL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
