package flow

// State is a step of the purchase flow.
type State int8

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StateSubmitting:
		return "Submitting"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state ends an attempt.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}
