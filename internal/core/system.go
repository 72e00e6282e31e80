package core

import (
	"context"
	"fmt"
	"time"

	"spindle-service/internal/clock"
	"spindle-service/internal/logger"
	"spindle-service/internal/status"
	"spindle-service/internal/types"
)

// SpindleSystem owns all controller state: the state machine, the status
// encoder, and the last asserted outputs. It is driven by a single
// control-loop goroutine; the only concurrency it shares with is the
// timer service, which handles its own locking.
type SpindleSystem struct {
	logger  *logger.Logger
	io      HardwareIO
	timer   TimerService
	machine *Machine
	status  *status.Encoder
	outputs types.Outputs
}

func NewSpindleSystem(io HardwareIO, timer TimerService, l *logger.Logger) *SpindleSystem {
	return &SpindleSystem{
		logger:  l.WithTag("spindle"),
		io:      io,
		timer:   timer,
		machine: NewMachine(timer),
		status:  status.NewEncoder(timer, status.DefaultTiming()),
	}
}

// Start initializes the hardware and arms the cold-start holdoff.
func (s *SpindleSystem) Start() error {
	s.logger.Infof("Initializing hardware IO")
	if err := s.io.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize hardware: %w", err)
	}

	s.machine.Start()
	s.logger.Infof("Controller starting in state %s", s.machine.State())
	return nil
}

// Step runs one control-loop iteration: sample inputs, evaluate the
// state machine, refresh the status blinker, assert outputs.
func (s *SpindleSystem) Step() error {
	in, err := s.io.ReadInputs()
	if err != nil {
		// Outputs hold their previous levels; the controller is not
		// permitted to halt.
		s.logger.Errorf("Failed to read inputs: %v", err)
		return err
	}

	prev := s.machine.State()
	st := s.machine.Step(in)
	if st != prev {
		s.logger.Infof("State transition: %s -> %s", prev, st)
	}

	out := s.machine.Outputs(in, s.outputs)
	out.Status = s.status.Update(st)
	s.outputs = out

	if err := s.io.WriteOutputs(out); err != nil {
		s.logger.Errorf("Failed to write outputs: %v", err)
		return err
	}
	return nil
}

// Run paces the control loop at the clock tick period until the context
// is cancelled. Step errors are already logged; the loop keeps going.
func (s *SpindleSystem) Run(ctx context.Context) error {
	ticker := time.NewTicker(clock.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = s.Step()
		}
	}
}

// State returns the active state.
func (s *SpindleSystem) State() types.State {
	return s.machine.State()
}

// Outputs returns the output levels asserted by the last Step.
func (s *SpindleSystem) Outputs() types.Outputs {
	return s.outputs
}

func (s *SpindleSystem) Shutdown() {
	s.logger.Infof("Releasing hardware")
	s.io.Cleanup()
}
