package stopwatch

import "time"

// SaturatingAdd returns s with d added to its elapsed time, saturating at
// MaxDuration. Whether s is running is unchanged.
func (s Stopwatch[I]) SaturatingAdd(d time.Duration) Stopwatch[I] {
	s.elapsed = saturatingAdd(s.elapsed, nonNegative(d))
	return s
}

// SaturatingSub returns s with d subtracted from its elapsed time, stopping
// at zero. The time accrued by a running stopwatch is folded in first.
func (s Stopwatch[I]) SaturatingSub(d time.Duration) Stopwatch[I] {
	if !s.running {
		s.elapsed = saturatingSub(s.elapsed, nonNegative(d))
		return s
	}
	return s.SaturatingSubAt(d, s.now())
}

// SaturatingSubAt is like SaturatingSub but folds in the time accrued up to
// anchor.
func (s Stopwatch[I]) SaturatingSubAt(d time.Duration, anchor I) Stopwatch[I] {
	s.syncAt(anchor)
	s.elapsed = saturatingSub(s.elapsed, nonNegative(d))
	return s
}

// CheckedAdd returns s with d added to its elapsed time, or false if the
// result overflows. On failure the returned stopwatch equals s.
func (s Stopwatch[I]) CheckedAdd(d time.Duration) (Stopwatch[I], bool) {
	elapsed, ok := checkedAdd(s.elapsed, nonNegative(d))
	if !ok {
		return s, false
	}
	s.elapsed = elapsed
	return s, true
}

// CheckedSub returns s with d subtracted from its elapsed time, or false if
// the result would be negative. The time accrued by a running stopwatch is
// folded in first; that fold can overflow too. On failure the returned
// stopwatch equals s.
func (s Stopwatch[I]) CheckedSub(d time.Duration) (Stopwatch[I], bool) {
	if !s.running {
		elapsed, ok := checkedSub(s.elapsed, nonNegative(d))
		if !ok {
			return s, false
		}
		s.elapsed = elapsed
		return s, true
	}
	return s.CheckedSubAt(d, s.now())
}

// CheckedSubAt is like CheckedSub but folds in the time accrued up to
// anchor.
func (s Stopwatch[I]) CheckedSubAt(d time.Duration, anchor I) (Stopwatch[I], bool) {
	orig := s
	if !s.checkedSyncAt(anchor) {
		return orig, false
	}
	elapsed, ok := checkedSub(s.elapsed, nonNegative(d))
	if !ok {
		return orig, false
	}
	s.elapsed = elapsed
	return s, true
}

// Add returns s with d added to its elapsed time.
//
// Add panics if the result overflows; it is a convenience for callers that
// treat overflow as a bug. Use CheckedAdd or SaturatingAdd otherwise.
func (s Stopwatch[I]) Add(d time.Duration) Stopwatch[I] {
	r, ok := s.CheckedAdd(d)
	if !ok {
		panic("stopwatch: overflow when adding duration to stopwatch")
	}
	return r
}

// Sub returns s with d subtracted from its elapsed time.
//
// Sub panics if the result would be negative or folding in the running time
// overflows. Use CheckedSub or SaturatingSub otherwise.
func (s Stopwatch[I]) Sub(d time.Duration) Stopwatch[I] {
	r, ok := s.CheckedSub(d)
	if !ok {
		panic("stopwatch: overflow when subtracting duration from stopwatch")
	}
	return r
}

// syncAt folds the time accrued up to anchor into the elapsed total and
// restarts from anchor, as if the stopwatch had been stopped and started
// again.
func (s *Stopwatch[I]) syncAt(anchor I) {
	if !s.running {
		return
	}
	s.elapsed = s.ElapsedAt(anchor)
	s.start = anchor
}

// checkedSyncAt is syncAt without saturation. It leaves s untouched and
// returns false on overflow.
func (s *Stopwatch[I]) checkedSyncAt(anchor I) bool {
	if !s.running {
		return true
	}
	elapsed, ok := s.CheckedElapsedAt(anchor)
	if !ok {
		return false
	}
	s.elapsed = elapsed
	s.start = anchor
	return true
}
