package status

import "spindle-service/internal/types"

// Symbol is a single Morse element on the status line.
type Symbol int

const (
	Dot  Symbol = iota // short pulse
	Dash               // long pulse
)

// Pattern is the ordered symbol sequence for one state's designator
// letter. Patterns are at most four symbols.
type Pattern []Symbol

var patterns = map[types.State]Pattern{
	types.StateError:           {Dash, Dot, Dot, Dash},  // X
	types.StateColdStart:       {Dot, Dot, Dot},         // S
	types.StateEstopped:        {Dot},                   // E
	types.StateReady:           {Dot, Dash, Dot},        // R
	types.StateForwardStart:    {Dot, Dash},             // A
	types.StateForwardRun:      {Dash, Dot, Dot, Dot},   // B
	types.StateForwardSpindown: {Dash, Dot, Dash, Dot},  // C
	types.StateReverseStart:    {Dot, Dot},              // I
	types.StateReverseRun:      {Dot, Dash, Dash, Dash}, // J
	types.StateReverseSpindown: {Dash, Dot, Dash},       // K
}

// unknown states blink 'U'
var unknownPattern = Pattern{Dot, Dot, Dash}

// PatternFor returns the designator pattern for a state.
func PatternFor(s types.State) Pattern {
	if p, ok := patterns[s]; ok {
		return p
	}
	return unknownPattern
}
