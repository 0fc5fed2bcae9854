package workflow

// State is a listing's position in its publication lifecycle. The values
// match the status column of the listings table.
type State string

const (
	StateDraft     State = "DRAFT"
	StateReady     State = "READY"
	StatePublished State = "PUBLISHED"
)

// IsTerminal returns true if the state is a terminal state (no further transitions allowed)
func (s State) IsTerminal() bool {
	return s == StatePublished
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid lifecycle state
func (s State) IsValid() bool {
	switch s {
	case StateDraft, StateReady, StatePublished:
		return true
	}
	return false
}
