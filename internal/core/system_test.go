package core

import (
	"errors"
	"testing"

	"spindle-service/internal/clock"
	"spindle-service/internal/logger"
	"spindle-service/internal/status"
	"spindle-service/internal/types"
)

// Mock HardwareIO
type mockIO struct {
	inputs      types.Inputs
	outputs     types.Outputs
	readErr     error
	writeErr    error
	initialized bool
	cleaned     bool
	writes      int
}

func (m *mockIO) Initialize() error { m.initialized = true; return nil }
func (m *mockIO) Cleanup()          { m.cleaned = true }

func (m *mockIO) ReadInputs() (types.Inputs, error) {
	if m.readErr != nil {
		return types.Inputs{}, m.readErr
	}
	return m.inputs, nil
}

func (m *mockIO) WriteOutputs(out types.Outputs) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.outputs = out
	m.writes++
	return nil
}

// Test helpers

func newTestSystem(t *testing.T) (*SpindleSystem, *mockIO, *clock.Service) {
	t.Helper()
	l := logger.NewLogger(nil, logger.LogLevelNone)
	io := &mockIO{}
	ticks := clock.New()
	system := NewSpindleSystem(io, ticks, l)
	if err := system.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return system, io, ticks
}

// run advances time and the control loop together: one tick, one step.
func run(t *testing.T, s *SpindleSystem, ticks *clock.Service, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ticks.Tick()
		if err := s.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
}

// toReady walks the system through cold start and estop clearance.
func toReady(t *testing.T, s *SpindleSystem, io *mockIO, ticks *clock.Service) {
	t.Helper()
	io.inputs = types.Inputs{EstopClear: true}
	run(t, s, ticks, int(clock.Ticks(ColdStartTime)))
	if s.State() != types.StateEstopped {
		t.Fatalf("expected estopped after cold start, got %s", s.State())
	}
	run(t, s, ticks, 1)
	if s.State() != types.StateReady {
		t.Fatalf("expected ready after estop clear, got %s", s.State())
	}
}

func TestStartInitializesHardware(t *testing.T) {
	system, io, _ := newTestSystem(t)
	if !io.initialized {
		t.Error("Start should initialize hardware")
	}
	if system.State() != types.StateColdStart {
		t.Errorf("expected cold-start, got %s", system.State())
	}
	system.Shutdown()
	if !io.cleaned {
		t.Error("Shutdown should release hardware")
	}
}

func TestColdStartHoldoff(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	io.inputs = types.Inputs{EstopClear: true} // ignored during cold start

	run(t, system, ticks, int(clock.Ticks(ColdStartTime))-1)
	if system.State() != types.StateColdStart {
		t.Fatalf("cold start released early: %s", system.State())
	}
	// Status blinks its cold-start pattern; everything else stays off.
	out := io.outputs
	out.Status = false
	if out != (types.Outputs{}) {
		t.Errorf("control outputs should be off during cold start, got %+v", io.outputs)
	}

	run(t, system, ticks, 1)
	if system.State() != types.StateEstopped {
		t.Errorf("expected estopped after holdoff, got %s", system.State())
	}
}

func TestForwardStartSequence(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)

	io.inputs.Forward = true
	run(t, system, ticks, 1)
	if system.State() != types.StateForwardStart {
		t.Fatalf("expected forward-start, got %s", system.State())
	}
	if !io.outputs.Inhibit || !io.outputs.StartPulse {
		t.Errorf("start pulse window should assert inhibit+start, got %+v", io.outputs)
	}
	if io.outputs.Direction {
		t.Error("direction should be forward (false)")
	}

	// One tick short of the pulse duration: still pulsing.
	run(t, system, ticks, int(clock.Ticks(StartPulseTime))-1)
	if system.State() != types.StateForwardStart {
		t.Fatalf("start pulse ended early: %s", system.State())
	}

	run(t, system, ticks, 1)
	if system.State() != types.StateForwardRun {
		t.Fatalf("expected forward-run after pulse, got %s", system.State())
	}
	if !io.outputs.Inhibit || io.outputs.StartPulse {
		t.Errorf("running state should hold inhibit with start released, got %+v", io.outputs)
	}
}

func TestSpindownToReady(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)

	io.inputs.Forward = true
	run(t, system, ticks, 1+int(clock.Ticks(StartPulseTime)))
	if system.State() != types.StateForwardRun {
		t.Fatalf("expected forward-run, got %s", system.State())
	}

	io.inputs.Forward = false
	run(t, system, ticks, 1)
	if system.State() != types.StateForwardSpindown {
		t.Fatalf("expected forward-spindown, got %s", system.State())
	}
	if io.outputs.Inhibit {
		t.Error("inhibit should release during spin-down")
	}

	run(t, system, ticks, int(clock.Ticks(CoastTime))-1)
	if system.State() != types.StateForwardSpindown {
		t.Fatalf("coast holdoff cut short: %s", system.State())
	}
	run(t, system, ticks, 1)
	if system.State() != types.StateReady {
		t.Errorf("expected ready after coast with estop clear, got %s", system.State())
	}
}

func TestSpindownToEstopped(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)

	io.inputs.Forward = true
	run(t, system, ticks, 1+int(clock.Ticks(StartPulseTime)))

	// Estop opens while running: spin down, then fall back to estopped.
	io.inputs = types.Inputs{Forward: true}
	run(t, system, ticks, 1)
	if system.State() != types.StateForwardSpindown {
		t.Fatalf("expected forward-spindown on estop loss, got %s", system.State())
	}
	run(t, system, ticks, int(clock.Ticks(CoastTime)))
	if system.State() != types.StateEstopped {
		t.Errorf("expected estopped after coast without estop clear, got %s", system.State())
	}
}

func TestRestartDuringSpindown(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)

	io.inputs.Forward = true
	run(t, system, ticks, 1+int(clock.Ticks(StartPulseTime)))

	io.inputs.Forward = false
	run(t, system, ticks, 1)
	run(t, system, ticks, int(clock.Ticks(CoastTime))/2) // partway through coast

	// Re-commanding forward during spin-down restarts the start pulse.
	io.inputs.Forward = true
	run(t, system, ticks, 1)
	if system.State() != types.StateForwardStart {
		t.Fatalf("expected forward-start again, got %s", system.State())
	}
	if !io.outputs.StartPulse {
		t.Error("start pulse should be asserted after restart")
	}
	run(t, system, ticks, int(clock.Ticks(StartPulseTime)))
	if system.State() != types.StateForwardRun {
		t.Errorf("restart should re-arm the full start pulse, got %s", system.State())
	}
}

func TestReverseSequenceSetsDirection(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)

	io.inputs.Reverse = true
	run(t, system, ticks, 1)
	if system.State() != types.StateReverseStart {
		t.Fatalf("expected reverse-start, got %s", system.State())
	}
	if !io.outputs.Direction || !io.outputs.StartPulse || !io.outputs.Inhibit {
		t.Errorf("reverse start should assert direction+inhibit+start, got %+v", io.outputs)
	}

	run(t, system, ticks, int(clock.Ticks(StartPulseTime)))
	if system.State() != types.StateReverseRun {
		t.Fatalf("expected reverse-run, got %s", system.State())
	}
	if !io.outputs.Direction {
		t.Error("direction should stay reversed while running")
	}
}

func TestInterlockHoldsDirectionThroughError(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)

	// Get the motor running reversed so direction is energized.
	io.inputs.Reverse = true
	run(t, system, ticks, 1+int(clock.Ticks(StartPulseTime)))
	if system.State() != types.StateReverseRun {
		t.Fatalf("expected reverse-run, got %s", system.State())
	}

	// Interlock violation: both directions commanded.
	io.inputs.Forward = true
	run(t, system, ticks, 1)
	if system.State() != types.StateError {
		t.Fatalf("expected error, got %s", system.State())
	}
	if !io.outputs.Direction {
		t.Error("direction must hold its level on error entry")
	}
	if io.outputs.Inhibit || io.outputs.StartPulse || io.outputs.Lamp {
		t.Errorf("error state should drop inhibit/start/lamp, got %+v", io.outputs)
	}

	// Hazard persists past the holdoff: the state is held and direction
	// keeps its level.
	run(t, system, ticks, int(clock.Ticks(ErrorRecoverTime))+100)
	if system.State() != types.StateError {
		t.Fatalf("error must hold while hazard persists, got %s", system.State())
	}
	if !io.outputs.Direction {
		t.Error("direction must stay held while error persists")
	}

	// Clear the hazard: recovery needs a fresh full holdoff because
	// re-entry kept re-arming it.
	io.inputs = types.Inputs{EstopClear: true}
	run(t, system, ticks, int(clock.Ticks(ErrorRecoverTime))-1)
	if system.State() != types.StateError {
		t.Fatalf("recovery holdoff cut short: %s", system.State())
	}
	run(t, system, ticks, 1)
	if system.State() != types.StateEstopped {
		t.Fatalf("expected recovery to estopped, got %s", system.State())
	}
	if io.outputs.Direction {
		t.Error("direction resets once recovery reaches estopped")
	}
}

func TestEstopLossFromReady(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)

	io.inputs.EstopClear = false
	run(t, system, ticks, 1)
	if system.State() != types.StateEstopped {
		t.Errorf("expected estopped on estop loss, got %s", system.State())
	}
}

func TestLampPassthrough(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)

	io.inputs.LampSelect = true
	run(t, system, ticks, 1)
	if !io.outputs.Lamp {
		t.Error("lamp should follow lamp-select in ready")
	}
	io.inputs.LampSelect = false
	run(t, system, ticks, 1)
	if io.outputs.Lamp {
		t.Error("lamp should follow lamp-select off")
	}
}

func TestStatusBlinksEstoppedPattern(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	io.inputs = types.Inputs{}
	run(t, system, ticks, int(clock.Ticks(ColdStartTime)))
	if system.State() != types.StateEstopped {
		t.Fatalf("expected estopped, got %s", system.State())
	}

	// Estopped blinks E: one dot per gap+dot+interval cycle, so over one
	// full cycle the status line is lit for exactly the dot duration.
	unit := int(clock.Ticks(status.StatusTimeUnit))
	cycle := 9 * unit // 7 gap + 1 dot + 1 interval
	lit := 0
	for i := 0; i < cycle; i++ {
		run(t, system, ticks, 1)
		if io.outputs.Status {
			lit++
		}
	}
	if lit != unit {
		t.Errorf("expected %d lit ticks per cycle, got %d", unit, lit)
	}
}

func TestReadErrorHoldsOutputs(t *testing.T) {
	system, io, ticks := newTestSystem(t)
	toReady(t, system, io, ticks)
	before := system.State()

	io.readErr = errors.New("bus fault")
	ticks.Tick()
	if err := system.Step(); err == nil {
		t.Fatal("expected Step to report the read failure")
	}
	if system.State() != before {
		t.Errorf("state should hold on read failure, got %s", system.State())
	}

	io.readErr = nil
	run(t, system, ticks, 1)
	if system.State() != types.StateReady {
		t.Errorf("loop should resume after the fault clears, got %s", system.State())
	}
}
