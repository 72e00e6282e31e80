// Package status renders the controller state as a repeating Morse-code
// blink sequence on the single status output.
package status

import (
	"time"

	"spindle-service/internal/clock"
	"spindle-service/internal/types"
)

// Clock is the read-only view of the tick counter the encoder needs.
type Clock interface {
	Now() uint32
}

// Timing holds the blink interval durations in ticks.
type Timing struct {
	Dot      uint32 // lit duration of a dot
	Dash     uint32 // lit duration of a dash
	Interval uint32 // dark gap between symbols
	Gap      uint32 // dark gap between letter repetitions
}

// StatusTimeUnit is the base Morse time unit.
const StatusTimeUnit = 100 * time.Millisecond

// DefaultTiming is the standard 1/3/1/7-unit Morse weighting.
func DefaultTiming() Timing {
	unit := clock.Ticks(StatusTimeUnit)
	return Timing{
		Dot:      1 * unit,
		Dash:     3 * unit,
		Interval: 1 * unit,
		Gap:      7 * unit,
	}
}

// Encoder turns a state's Morse pattern into a phased interval sequence.
// The sequence always starts with the inter-letter gap, so even phases
// are dark and odd phases are lit; that parity is relied on below.
type Encoder struct {
	clk    Clock
	timing Timing

	seq      []uint32
	phase    int
	deadline uint32
	state    types.State
	valid    bool
}

func NewEncoder(clk Clock, timing Timing) *Encoder {
	return &Encoder{clk: clk, timing: timing}
}

// Update refreshes the blink sequence for the given state and returns
// whether the status line is lit. On a state change the sequence is
// rebuilt and restarted from the gap; otherwise the phase advances once
// the current interval's deadline has passed.
func (e *Encoder) Update(s types.State) bool {
	if !e.valid || s != e.state {
		e.rebuild(s)
	} else if int32(e.clk.Now()-e.deadline) >= 0 {
		e.phase = (e.phase + 1) % len(e.seq)
		e.deadline = e.clk.Now() + e.seq[e.phase]
	}
	return e.phase&1 == 1
}

func (e *Encoder) rebuild(s types.State) {
	e.seq = e.seq[:0]
	e.seq = append(e.seq, e.timing.Gap)
	for _, sym := range PatternFor(s) {
		if sym == Dash {
			e.seq = append(e.seq, e.timing.Dash)
		} else {
			e.seq = append(e.seq, e.timing.Dot)
		}
		e.seq = append(e.seq, e.timing.Interval)
	}
	e.state = s
	e.valid = true
	e.phase = 0
	e.deadline = e.clk.Now() + e.seq[0]
}
