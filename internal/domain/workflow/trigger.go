package workflow

// Trigger represents an event that can cause a state transition
type Trigger string

const (
	TriggerValidationPassed Trigger = "VALIDATION_PASSED"
	TriggerValidationFailed Trigger = "VALIDATION_FAILED"
	TriggerEditCopy         Trigger = "EDIT_COPY"
	TriggerPublish          Trigger = "PUBLISH"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
