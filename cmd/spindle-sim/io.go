package main

import (
	"sync"

	"spindle-service/internal/types"
)

// simIO implements core.HardwareIO against in-memory signals so the
// interlock logic can be exercised without a controller board. The UI
// goroutine and the control loop share it through the mutex.
type simIO struct {
	mu  sync.Mutex
	in  types.Inputs
	out types.Outputs
}

func (s *simIO) Initialize() error { return nil }
func (s *simIO) Cleanup()          {}

func (s *simIO) ReadInputs() (types.Inputs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in, nil
}

func (s *simIO) WriteOutputs(out types.Outputs) error {
	s.mu.Lock()
	s.out = out
	s.mu.Unlock()
	return nil
}

// Toggle applies an input mutation under the lock.
func (s *simIO) Toggle(f func(*types.Inputs)) {
	s.mu.Lock()
	f(&s.in)
	s.mu.Unlock()
}

// Snapshot returns the current signal levels for rendering.
func (s *simIO) Snapshot() (types.Inputs, types.Outputs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in, s.out
}
