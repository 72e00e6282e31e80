package core

import "spindle-service/internal/types"

// Outputs maps the active state and the passthrough inputs to output
// levels. Every state gets its own branch; no fallthrough.
//
// The error and unknown branches hold Direction at its previous level:
// the machine may have entered error from a running state with the motor
// still spinning, and flipping the direction contactor before a coast
// period would attempt to reverse a loaded motor. Direction is cleared
// again on the estopped leg of recovery.
func (m *Machine) Outputs(in types.Inputs, prev types.Outputs) types.Outputs {
	switch m.state {
	case types.StateColdStart:
		return types.Outputs{}

	case types.StateEstopped, types.StateReady:
		return types.Outputs{Lamp: in.LampSelect}

	case types.StateForwardStart:
		return types.Outputs{Lamp: in.LampSelect, Inhibit: true, StartPulse: true}

	case types.StateForwardRun:
		return types.Outputs{Lamp: in.LampSelect, Inhibit: true}

	case types.StateForwardSpindown:
		return types.Outputs{Lamp: in.LampSelect}

	case types.StateReverseStart:
		return types.Outputs{Lamp: in.LampSelect, Inhibit: true, StartPulse: true, Direction: true}

	case types.StateReverseRun:
		return types.Outputs{Lamp: in.LampSelect, Inhibit: true, Direction: true}

	case types.StateReverseSpindown:
		return types.Outputs{Lamp: in.LampSelect, Direction: true}

	default: // StateError and anything unexpected
		return types.Outputs{Direction: prev.Direction}
	}
}
