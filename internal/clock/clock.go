// Package clock provides the controller's single source of time: a
// free-running millisecond tick counter with a one-shot countdown built
// on top of it. In the reference hardware both live in a timer interrupt;
// here the interrupt context is a ticker goroutine and the critical
// section is a mutex.
package clock

import (
	"context"
	"sync"
	"time"
)

// TickPeriod is the fixed period of the tick source.
const TickPeriod = time.Millisecond

// Ticks converts a duration to whole ticks.
func Ticks(d time.Duration) uint32 {
	return uint32(d / TickPeriod)
}

// Service owns the monotonic tick counter and the oneshot countdown.
// Tick is called from the tick goroutine; all other methods are safe to
// call from the control loop. The tick counter wraps on overflow, so
// deadline comparisons against Now must use wraparound-safe subtraction,
// never equality against a far-future value.
type Service struct {
	mu      sync.Mutex
	ticks   uint32
	oneshot uint32
	expired bool
}

func New() *Service {
	return &Service{}
}

// Tick advances the counter by one period and, if a countdown is armed,
// decrements it, latching the expired flag when it reaches zero. It must
// stay O(1): it runs once per period for the life of the process.
func (s *Service) Tick() {
	s.mu.Lock()
	s.ticks++
	if s.oneshot != 0 {
		s.oneshot--
		if s.oneshot == 0 {
			s.expired = true
		}
	}
	s.mu.Unlock()
}

// Now returns the current tick count. NB. wraps.
func (s *Service) Now() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Arm starts the oneshot countdown, clobbering any countdown already
// running. Arming with zero ticks is the cancellation idiom: the
// countdown goes inert and the expired flag is cleared.
func (s *Service) Arm(ticks uint32) {
	s.mu.Lock()
	s.expired = false
	s.oneshot = ticks
	s.mu.Unlock()
}

// Cancel discards any pending countdown without latching expiry.
func (s *Service) Cancel() {
	s.Arm(0)
}

// Expired reports whether the countdown has run out. The flag latches
// when the countdown reaches zero and stays set until the next Arm.
func (s *Service) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

// Run drives Tick from a real ticker until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}
