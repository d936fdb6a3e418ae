package scanner

// State is the scanner's own lifecycle state, modeled as a small
// transition table and narrowed to the states a scan pipeline (rather
// than a trading pair) actually has.
type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateError    State = "error"
)

var validTransitions = map[State][]State{
	StateIdle:     {StateScanning},
	StateScanning: {StateIdle, StateError},
	StateError:    {StateIdle},
}

// CanTransition reports whether from->to is an allowed scanner transition.
func CanTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
