package core

import "spindle-service/internal/types"

// TimerService is the clock/timer surface the state machine and status
// encoder need: the monotonic tick count plus the single oneshot
// countdown. internal/clock.Service implements it.
type TimerService interface {
	// Now returns the current tick count. Wraps; compare with signed
	// tick differences only.
	Now() uint32

	// Arm starts the oneshot countdown, replacing any pending one and
	// clearing the expired flag. Arm(0) leaves the timer inert.
	Arm(ticks uint32)

	// Cancel is Arm(0).
	Cancel()

	// Expired reports the latched expiry flag.
	Expired() bool
}

// HardwareIO is the collaborator I/O layer: it owns pin-level access and
// polarity normalization, and hands the core logical active-high signal
// snapshots.
type HardwareIO interface {
	Initialize() error
	Cleanup()

	ReadInputs() (types.Inputs, error)
	WriteOutputs(types.Outputs) error
}
