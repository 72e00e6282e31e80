package core

import "time"

// Interlock timing. These are holdoffs, not debounce periods: inputs are
// debounced externally by the wiring.
const (
	// StartPulseTime is how long the start contactor is pulsed when a
	// direction is first commanded.
	StartPulseTime = 500 * time.Millisecond

	// CoastTime is the mandatory spin-down wait after a direction is
	// deasserted before the motor may be re-energized.
	CoastTime = 1 * time.Second

	// ColdStartTime is the power-on holdoff before the controller
	// accepts any input.
	ColdStartTime = 2 * time.Second

	// ErrorRecoverTime is how long the error state is held before the
	// controller attempts to recover through estopped.
	ErrorRecoverTime = 5 * time.Second
)
