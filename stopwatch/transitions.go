package stopwatch

import "time"

// Start starts measuring time. It returns ErrStartWhileRunning and leaves
// the stopwatch untouched if it is already running.
func (s *Stopwatch[I]) Start() error {
	if s.running {
		return ErrStartWhileRunning
	}
	return s.StartAt(s.now())
}

// StartAt is like Start but records anchor as the start instant. anchor may
// be in the future, in which case no time accrues until it is reached.
func (s *Stopwatch[I]) StartAt(anchor I) error {
	if s.running {
		return ErrStartWhileRunning
	}
	s.start = anchor
	s.running = true
	return nil
}

// Stop stops measuring time, adding the time since the latest start to the
// elapsed total. It returns ErrStopWhileStopped if the stopwatch is already
// stopped. The total saturates at MaxDuration.
func (s *Stopwatch[I]) Stop() error {
	if !s.running {
		return ErrStopWhileStopped
	}
	return s.StopAt(s.now())
}

// StopAt is like Stop but measures up to anchor. An anchor before the
// latest start adds nothing.
func (s *Stopwatch[I]) StopAt(anchor I) error {
	if !s.running {
		return ErrStopWhileStopped
	}
	s.elapsed = s.ElapsedAt(anchor)
	s.clearStart()
	return nil
}

// CheckedStop is like Stop but leaves the stopwatch running and returns
// false if the elapsed total would overflow. err is ErrStopWhileStopped if
// the stopwatch was not running.
func (s *Stopwatch[I]) CheckedStop() (stopped bool, err error) {
	if !s.running {
		return false, ErrStopWhileStopped
	}
	return s.CheckedStopAt(s.now())
}

// CheckedStopAt is like CheckedStop but measures up to anchor.
func (s *Stopwatch[I]) CheckedStopAt(anchor I) (stopped bool, err error) {
	if !s.running {
		return false, ErrStopWhileStopped
	}
	elapsed, ok := s.CheckedElapsedAt(anchor)
	if !ok {
		return false, nil
	}
	s.elapsed = elapsed
	s.clearStart()
	return true, nil
}

// Toggle stops the stopwatch if it is running and starts it otherwise.
func (s *Stopwatch[I]) Toggle() {
	if s.running {
		_ = s.Stop()
	} else {
		_ = s.Start()
	}
}

// ToggleAt is like Toggle but uses anchor as the current instant.
func (s *Stopwatch[I]) ToggleAt(anchor I) {
	if s.running {
		_ = s.StopAt(anchor)
	} else {
		_ = s.StartAt(anchor)
	}
}

// Guard starts the stopwatch and returns a guard that stops it on release.
// It returns ErrGuardWhileRunning if the stopwatch is already running.
func (s *Stopwatch[I]) Guard() (*Guard[I], error) {
	if s.running {
		return nil, ErrGuardWhileRunning
	}
	return s.GuardAt(s.now())
}

// GuardAt is like Guard but starts the stopwatch at anchor.
func (s *Stopwatch[I]) GuardAt(anchor I) (*Guard[I], error) {
	if err := s.StartAt(anchor); err != nil {
		return nil, ErrGuardWhileRunning
	}
	return &Guard[I]{sw: s}, nil
}

// Reset stops the stopwatch and sets its elapsed time to zero.
func (s *Stopwatch[I]) Reset() {
	*s = Stopwatch[I]{clock: s.clock}
}

// ResetInPlace sets the elapsed time to zero without changing whether the
// stopwatch is running. A running stopwatch restarts from now.
func (s *Stopwatch[I]) ResetInPlace() {
	s.SetInPlace(0)
}

// ResetInPlaceAt is like ResetInPlace but restarts a running stopwatch from
// anchor.
func (s *Stopwatch[I]) ResetInPlaceAt(anchor I) {
	s.SetInPlaceAt(0, anchor)
}

// Set stops the stopwatch and sets its elapsed time to d.
func (s *Stopwatch[I]) Set(d time.Duration) {
	*s = WithElapsed(s.clock, d)
}

// SetInPlace sets the elapsed time to d without changing whether the
// stopwatch is running. A running stopwatch restarts from now, so its
// elapsed time reads d immediately afterwards.
func (s *Stopwatch[I]) SetInPlace(d time.Duration) {
	if !s.running {
		s.elapsed = nonNegative(d)
		return
	}
	s.SetInPlaceAt(d, s.now())
}

// SetInPlaceAt is like SetInPlace but restarts a running stopwatch from
// anchor.
func (s *Stopwatch[I]) SetInPlaceAt(d time.Duration, anchor I) {
	s.elapsed = nonNegative(d)
	if s.running {
		s.start = anchor
	}
}

// Replace stops the stopwatch, sets its elapsed time to d and returns the
// elapsed time it had before.
func (s *Stopwatch[I]) Replace(d time.Duration) time.Duration {
	old := s.Elapsed()
	s.Set(d)
	return old
}

// ReplaceAt is like Replace but measures the previous elapsed time at
// anchor.
func (s *Stopwatch[I]) ReplaceAt(d time.Duration, anchor I) time.Duration {
	old := s.ElapsedAt(anchor)
	s.Set(d)
	return old
}

func (s *Stopwatch[I]) clearStart() {
	var zero I
	s.start = zero
	s.running = false
}
