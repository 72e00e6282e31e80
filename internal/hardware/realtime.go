package hardware

import (
	"golang.org/x/sys/unix"

	"spindle-service/internal/logger"
)

// controlPriority is the nice value for the control loop process.
const controlPriority = -15

// SetupRealtime pins the process's pages into memory and raises its
// scheduling priority so the control loop is not stalled by paging or
// background load. Failures are logged and tolerated: the controller
// still works without them, just with weaker latency guarantees.
func SetupRealtime(l *logger.Logger) {
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		l.Warnf("Failed to lock memory: %v", err)
	} else {
		l.Debugf("Locked process memory")
	}

	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, controlPriority); err != nil {
		l.Warnf("Failed to raise scheduling priority: %v", err)
	} else {
		l.Debugf("Scheduling priority set to %d", controlPriority)
	}
}
