package core

import (
	"spindle-service/internal/clock"
	"spindle-service/internal/types"
)

// Machine is the safety-interlocked state machine. Each advance method
// below verifies the current state is a whitelisted predecessor before
// committing, arming or cancelling the oneshot countdown as a side
// effect. A transition attempted from anywhere else routes to the error
// state instead; that is the catch-all safety net for logic defects.
type Machine struct {
	timer TimerService
	state types.State
}

func NewMachine(timer TimerService) *Machine {
	return &Machine{
		timer: timer,
		state: types.StateColdStart,
	}
}

// State returns the active state.
func (m *Machine) State() types.State {
	return m.state
}

// Start arms the power-on holdoff for the initial cold-start state.
func (m *Machine) Start() {
	m.timer.Arm(clock.Ticks(ColdStartTime))
}

// Step evaluates the active state's guard chain against one input
// snapshot. Guards are checked in priority order and the first match
// wins, so at most one transition is committed per step.
func (m *Machine) Step(in types.Inputs) types.State {
	switch m.state {
	case types.StateError:
		if in.Forward && in.Reverse {
			// Hazard still present: hold the state and restart
			// the recovery holdoff.
			m.toError()
		} else if m.timer.Expired() {
			m.toEstopped()
		}

	case types.StateColdStart:
		if m.timer.Expired() {
			m.toEstopped()
		}

	case types.StateEstopped:
		if in.Forward && in.Reverse {
			m.toError()
		} else if in.EstopClear {
			m.toReady()
		}

	case types.StateReady:
		if in.Forward && in.Reverse {
			m.toError()
		} else if !in.EstopClear {
			m.toEstopped()
		} else if in.Forward {
			m.toForwardStart()
		} else if in.Reverse {
			m.toReverseStart()
		}

	case types.StateForwardStart:
		if in.Reverse {
			m.toError()
		} else if !in.EstopClear || !in.Forward {
			m.toForwardSpindown()
		} else if m.timer.Expired() {
			m.toForwardRun()
		}

	case types.StateForwardRun:
		if in.Reverse {
			m.toError()
		} else if !in.EstopClear || !in.Forward {
			m.toForwardSpindown()
		}

	case types.StateForwardSpindown:
		if in.Reverse {
			m.toError()
		} else if in.EstopClear && in.Forward {
			m.toForwardStart()
		} else if m.timer.Expired() {
			if !in.EstopClear {
				m.toEstopped()
			} else {
				m.toReady()
			}
		}

	case types.StateReverseStart:
		if in.Forward {
			m.toError()
		} else if !in.EstopClear || !in.Reverse {
			m.toReverseSpindown()
		} else if m.timer.Expired() {
			m.toReverseRun()
		}

	case types.StateReverseRun:
		if in.Forward {
			m.toError()
		} else if !in.EstopClear || !in.Reverse {
			m.toReverseSpindown()
		}

	case types.StateReverseSpindown:
		if in.Forward {
			m.toError()
		} else if in.EstopClear && in.Reverse {
			m.toReverseStart()
		} else if m.timer.Expired() {
			if !in.EstopClear {
				m.toEstopped()
			} else {
				m.toReady()
			}
		}

	default:
		m.toError()
	}

	return m.state
}

// toError is reachable from every state and (re)arms the recovery
// holdoff, so re-entry while the hazard persists keeps the state held.
func (m *Machine) toError() {
	m.timer.Arm(clock.Ticks(ErrorRecoverTime))
	m.state = types.StateError
}

func (m *Machine) toEstopped() {
	switch m.state {
	case types.StateError, types.StateColdStart, types.StateReady,
		types.StateForwardSpindown, types.StateReverseSpindown:
	default:
		m.toError()
		return
	}
	m.timer.Cancel()
	m.state = types.StateEstopped
}

func (m *Machine) toReady() {
	switch m.state {
	case types.StateEstopped, types.StateForwardSpindown, types.StateReverseSpindown:
	default:
		m.toError()
		return
	}
	m.timer.Cancel()
	m.state = types.StateReady
}

func (m *Machine) toForwardStart() {
	switch m.state {
	case types.StateReady, types.StateForwardSpindown:
	default:
		m.toError()
		return
	}
	m.timer.Arm(clock.Ticks(StartPulseTime))
	m.state = types.StateForwardStart
}

func (m *Machine) toForwardRun() {
	switch m.state {
	case types.StateForwardStart:
	default:
		m.toError()
		return
	}
	m.timer.Cancel()
	m.state = types.StateForwardRun
}

func (m *Machine) toForwardSpindown() {
	switch m.state {
	case types.StateForwardStart, types.StateForwardRun:
	default:
		m.toError()
		return
	}
	m.timer.Arm(clock.Ticks(CoastTime))
	m.state = types.StateForwardSpindown
}

func (m *Machine) toReverseStart() {
	switch m.state {
	case types.StateReady, types.StateReverseSpindown:
	default:
		m.toError()
		return
	}
	m.timer.Arm(clock.Ticks(StartPulseTime))
	m.state = types.StateReverseStart
}

func (m *Machine) toReverseRun() {
	switch m.state {
	case types.StateReverseStart:
	default:
		m.toError()
		return
	}
	m.timer.Cancel()
	m.state = types.StateReverseRun
}

func (m *Machine) toReverseSpindown() {
	switch m.state {
	case types.StateReverseStart, types.StateReverseRun:
	default:
		m.toError()
		return
	}
	m.timer.Arm(clock.Ticks(CoastTime))
	m.state = types.StateReverseSpindown
}
