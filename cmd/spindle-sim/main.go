// Command spindle-sim runs the spindle controller against simulated
// signals and renders a front panel in the terminal. Keys toggle the
// input lines; the panel shows the resulting state, outputs, and the
// Morse-coded status lamp.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"spindle-service/internal/clock"
	"spindle-service/internal/core"
	"spindle-service/internal/logger"
	"spindle-service/internal/types"
)

const redrawPeriod = 50 * time.Millisecond

func main() {
	// Screen output and log output don't mix; the sim runs silent.
	l := logger.NewLogger(log.New(io.Discard, "", 0), logger.LogLevelNone)

	sim := &simIO{}
	ticks := clock.New()
	system := core.NewSpindleSystem(sim, ticks, l)
	if err := system.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start controller: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(clock.TickPeriod)
	defer ticker.Stop()
	redraw := time.NewTicker(redrawPeriod)
	defer redraw.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
				handleKey(sim, ev.Rune())
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			ticks.Tick()
			_ = system.Step()

		case <-redraw.C:
			draw(screen, sim, system)
		}
	}
}

func handleKey(sim *simIO, r rune) {
	switch r {
	case 'f':
		sim.Toggle(func(in *types.Inputs) { in.Forward = !in.Forward })
	case 'r':
		sim.Toggle(func(in *types.Inputs) { in.Reverse = !in.Reverse })
	case 'e':
		sim.Toggle(func(in *types.Inputs) { in.EstopClear = !in.EstopClear })
	case 'l':
		sim.Toggle(func(in *types.Inputs) { in.LampSelect = !in.LampSelect })
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func lamp(on bool) string {
	if on {
		return "● on "
	}
	return "○ off"
}

func draw(s tcell.Screen, sim *simIO, system *core.SpindleSystem) {
	in, out := sim.Snapshot()
	state := system.State()

	base := tcell.StyleDefault
	title := base.Bold(true)
	lit := base.Foreground(tcell.ColorGreen).Bold(true)
	dark := base.Foreground(tcell.ColorGray)

	styleFor := func(on bool) tcell.Style {
		if on {
			return lit
		}
		return dark
	}

	s.Clear()
	drawText(s, 1, 1, title, "spindle-sim: interlock front panel")
	drawText(s, 1, 2, base, fmt.Sprintf("state: %s", state))

	drawText(s, 1, 4, title, "inputs")
	drawText(s, 3, 5, styleFor(in.Forward), "[f] forward      "+lamp(in.Forward))
	drawText(s, 3, 6, styleFor(in.Reverse), "[r] reverse      "+lamp(in.Reverse))
	drawText(s, 3, 7, styleFor(in.EstopClear), "[e] estop-clear  "+lamp(in.EstopClear))
	drawText(s, 3, 8, styleFor(in.LampSelect), "[l] lamp-select  "+lamp(in.LampSelect))

	dir := "fwd"
	if out.Direction {
		dir = "rev"
	}
	drawText(s, 1, 10, title, "outputs")
	drawText(s, 3, 11, styleFor(out.Lamp), "lamp         "+lamp(out.Lamp))
	drawText(s, 3, 12, styleFor(out.Inhibit), "inhibit      "+lamp(out.Inhibit))
	drawText(s, 3, 13, styleFor(out.StartPulse), "start-pulse  "+lamp(out.StartPulse))
	drawText(s, 3, 14, styleFor(out.Direction), "direction    "+lamp(out.Direction)+"  ("+dir+")")
	drawText(s, 3, 15, styleFor(out.Status), "status       "+lamp(out.Status))

	drawText(s, 1, 17, dark, "q quit")
	s.Show()
}
