package types

// State enumerates the controller's operating states. Exactly one is
// active at any time.
type State int

const (
	StateError           State = iota // unsafe input combination or illegal transition
	StateColdStart                    // initial holdoff after power-on
	StateEstopped                     // emergency-stop circuit open
	StateReady                        // estop clear, no direction commanded
	StateForwardStart                 // forward commanded, start pulse active
	StateForwardRun                   // forward running
	StateForwardSpindown              // coast holdoff after forward deassert
	StateReverseStart                 // reverse commanded, start pulse active
	StateReverseRun                   // reverse running
	StateReverseSpindown              // coast holdoff after reverse deassert
)

func (s State) String() string {
	switch s {
	case StateError:
		return "error"
	case StateColdStart:
		return "cold-start"
	case StateEstopped:
		return "estopped"
	case StateReady:
		return "ready"
	case StateForwardStart:
		return "forward-start"
	case StateForwardRun:
		return "forward-run"
	case StateForwardSpindown:
		return "forward-spindown"
	case StateReverseStart:
		return "reverse-start"
	case StateReverseRun:
		return "reverse-run"
	case StateReverseSpindown:
		return "reverse-spindown"
	default:
		return "unknown"
	}
}
