package types

// Inputs is one snapshot of the controller's input signals, already
// normalized to logical active-high by the I/O layer.
type Inputs struct {
	Forward    bool // forward direction commanded
	Reverse    bool // reverse direction commanded
	EstopClear bool // emergency-stop circuit permits operation
	LampSelect bool // work lamp selector
}

// Outputs is the signal levels asserted at the end of a control-loop
// iteration.
type Outputs struct {
	Lamp       bool // work lamp, passthrough of LampSelect in most states
	Inhibit    bool // motor contactor inhibit release
	StartPulse bool // momentary start contactor
	Direction  bool // false = forward, true = reverse
	Status     bool // Morse-coded status indicator
}
