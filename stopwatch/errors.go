package stopwatch

// Error is a violation of the stopwatch state machine. The four values are
// the complete set; callers should compare against them with == or
// errors.Is. The text returned by Error is for humans and may change.
type Error int

const (
	// ErrStartWhileRunning is returned by Start and StartAt when the stopwatch
	// is already running.
	ErrStartWhileRunning Error = iota + 1

	// ErrStopWhileStopped is returned by Stop, StopAt and the checked stops
	// when the stopwatch is already stopped.
	ErrStopWhileStopped

	// ErrGuardWhileRunning is returned by Guard and GuardAt when the
	// stopwatch is already running.
	ErrGuardWhileRunning

	// ErrGuardOnStopped is returned by NewGuard when the stopwatch is not
	// running.
	ErrGuardOnStopped
)

// ExpectsRunning reports whether the failed operation required a running
// stopwatch.
func (e Error) ExpectsRunning() bool {
	return e == ErrStopWhileStopped || e == ErrGuardOnStopped
}

// ExpectsStopped reports whether the failed operation required a stopped
// stopwatch.
func (e Error) ExpectsStopped() bool {
	return e == ErrStartWhileRunning || e == ErrGuardWhileRunning
}

func (e Error) op() string {
	switch e {
	case ErrStartWhileRunning:
		return "start"
	case ErrStopWhileStopped:
		return "stop"
	case ErrGuardWhileRunning:
		return "guard"
	case ErrGuardOnStopped:
		return "new guard"
	default:
		return ""
	}
}

func (e Error) Error() string {
	op := e.op()
	if op == "" {
		return "stopwatch: unknown error"
	}
	expected, actual := "stopped", "running"
	if e.ExpectsRunning() {
		expected, actual = actual, expected
	}
	return "stopwatch " + op + ": expected stopwatch to be " + expected + ", but it was " + actual
}
