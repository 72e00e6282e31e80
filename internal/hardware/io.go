package hardware

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"spindle-service/internal/logger"
	"spindle-service/internal/types"
)

const consumer = "spindle-service"

// LinuxIO drives the controller's signals through the GPIO character
// devices. It implements core.HardwareIO.
type LinuxIO struct {
	logger  *logger.Logger
	chips   map[int]*gpiocdev.Chip
	inputs  map[string]*gpiocdev.Line
	outputs map[string]*gpiocdev.Line
}

func NewLinuxIO(l *logger.Logger) *LinuxIO {
	return &LinuxIO{
		logger:  l.WithTag("hardware"),
		chips:   make(map[int]*gpiocdev.Chip),
		inputs:  make(map[string]*gpiocdev.Line),
		outputs: make(map[string]*gpiocdev.Line),
	}
}

func (io *LinuxIO) chip(n int) (*gpiocdev.Chip, error) {
	if c, ok := io.chips[n]; ok {
		return c, nil
	}
	c, err := gpiocdev.NewChip(fmt.Sprintf("gpiochip%d", n))
	if err != nil {
		return nil, fmt.Errorf("failed to open GPIO chip %d: %w", n, err)
	}
	io.chips[n] = c
	return c, nil
}

func (io *LinuxIO) Initialize() error {
	for name, mapping := range DiMappings {
		chip, err := io.chip(mapping.Chip)
		if err != nil {
			return err
		}

		opts := []gpiocdev.LineReqOption{
			gpiocdev.AsInput,
			gpiocdev.WithPullUp,
			gpiocdev.WithConsumer(consumer),
		}
		if mapping.ActiveLow {
			opts = append(opts, gpiocdev.AsActiveLow)
		}

		line, err := chip.RequestLine(mapping.Line, opts...)
		if err != nil {
			return fmt.Errorf("failed to request DI %s (line %d): %w", name, mapping.Line, err)
		}
		io.inputs[name] = line
		io.logger.Debugf("Configured DI %s: chip=%d, line=%d, active_low=%v",
			name, mapping.Chip, mapping.Line, mapping.ActiveLow)
	}

	for name, mapping := range DoMappings {
		chip, err := io.chip(mapping.Chip)
		if err != nil {
			return err
		}

		opts := []gpiocdev.LineReqOption{
			gpiocdev.AsOutput(0),
			gpiocdev.WithConsumer(consumer),
		}
		if mapping.ActiveLow {
			opts = append(opts, gpiocdev.AsActiveLow)
		}

		line, err := chip.RequestLine(mapping.Line, opts...)
		if err != nil {
			return fmt.Errorf("failed to request DO %s (line %d): %w", name, mapping.Line, err)
		}
		io.outputs[name] = line
		io.logger.Debugf("Configured DO %s: chip=%d, line=%d", name, mapping.Chip, mapping.Line)
	}

	io.logger.Infof("Hardware IO initialized: %d inputs, %d outputs",
		len(io.inputs), len(io.outputs))
	return nil
}

func (io *LinuxIO) readLine(name string) (bool, error) {
	line, ok := io.inputs[name]
	if !ok {
		return false, fmt.Errorf("unknown input signal: %s", name)
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return v != 0, nil
}

func (io *LinuxIO) writeLine(name string, value bool) error {
	line, ok := io.outputs[name]
	if !ok {
		return fmt.Errorf("unknown output signal: %s", name)
	}
	v := 0
	if value {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("failed to set %s=%v: %w", name, value, err)
	}
	return nil
}

// ReadInputs snapshots all input signals for one control-loop iteration.
func (io *LinuxIO) ReadInputs() (types.Inputs, error) {
	var in types.Inputs
	var err error

	if in.Forward, err = io.readLine("forward"); err != nil {
		return types.Inputs{}, err
	}
	if in.Reverse, err = io.readLine("reverse"); err != nil {
		return types.Inputs{}, err
	}
	if in.EstopClear, err = io.readLine("estop_clear"); err != nil {
		return types.Inputs{}, err
	}
	if in.LampSelect, err = io.readLine("lamp_select"); err != nil {
		return types.Inputs{}, err
	}
	return in, nil
}

// WriteOutputs asserts all output signals.
func (io *LinuxIO) WriteOutputs(out types.Outputs) error {
	if err := io.writeLine("lamp", out.Lamp); err != nil {
		return err
	}
	if err := io.writeLine("inhibit", out.Inhibit); err != nil {
		return err
	}
	if err := io.writeLine("start_pulse", out.StartPulse); err != nil {
		return err
	}
	if err := io.writeLine("direction", out.Direction); err != nil {
		return err
	}
	return io.writeLine("status", out.Status)
}

func (io *LinuxIO) Cleanup() {
	for name, line := range io.inputs {
		line.Close()
		io.logger.Debugf("Closed DI line for %s", name)
	}
	for name, line := range io.outputs {
		line.Close()
		io.logger.Debugf("Closed DO line for %s", name)
	}
	for id, chip := range io.chips {
		chip.Close()
		io.logger.Debugf("Closed GPIO chip %d", id)
	}
	io.logger.Infof("Hardware cleanup complete")
}
