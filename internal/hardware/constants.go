package hardware

// PinMapping addresses one signal by GPIO chip index and line offset.
// ActiveLow marks signals whose physical level is inverted from the
// logical value; the kernel normalizes those on request, so the core
// only ever sees logical active-high values.
type PinMapping struct {
	Chip      int
	Line      int
	ActiveLow bool
}

// Control inputs are wired active-low with pull-ups.
var DiMappings = map[string]PinMapping{
	"forward":     {0, 1, true},
	"reverse":     {0, 0, true},
	"lamp_select": {0, 2, true},
	"estop_clear": {0, 7, true},
}

var DoMappings = map[string]PinMapping{
	"lamp":        {0, 8, false},
	"inhibit":     {0, 9, false},
	"start_pulse": {0, 10, false},
	"direction":   {0, 11, false},
	"status":      {0, 12, false},
}
