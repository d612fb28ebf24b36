// Package stopwatch implements a stopwatch that accumulates elapsed time
// across start/stop cycles. It does not record laps.
//
// A Stopwatch is generic over its instant type, so it works with any clock
// that implements clock.Instant: the monotonic clock, the wall clock, or a
// fake clock in tests. Every operation that consults "now" has an ...At
// variant taking an explicit anchor instant instead, which lets several
// stopwatches be driven from a single reading and makes tests deterministic.
//
// Stopwatches are plain values with no internal locking. Callers sharing one
// between goroutines must synchronize access themselves.
//
// Add and Sub panic on overflow. Use the Checked and Saturating methods when
// overflow must be handled. No other method panics, provided the stopwatch
// has a clock to read.
package stopwatch

import (
	"fmt"
	"time"

	"github.com/ulahello/libsw/clock"
)

// Stopwatch measures and accumulates elapsed time between starts and stops.
//
// Internally a Stopwatch holds the elapsed time saved by previous runs and,
// while running, the instant of the latest start. Stopping adds the time
// since that start to the saved elapsed time.
//
// The zero value is a stopped stopwatch with no elapsed time. It reads the
// current instant from I itself, which works for every adapter in the clock
// package.
type Stopwatch[I clock.Instant[I]] struct {
	clock   clock.Clock[I]
	elapsed time.Duration
	start   I
	running bool
}

// New returns a stopped stopwatch with zero elapsed time.
//
// c may be nil when the zero value of I implements clock.Clock[I].
func New[I clock.Instant[I]](c clock.Clock[I]) Stopwatch[I] {
	return WithElapsed(c, 0)
}

// NewStarted returns a running stopwatch with zero elapsed time.
func NewStarted[I clock.Instant[I]](c clock.Clock[I]) Stopwatch[I] {
	return WithElapsedStarted(c, 0)
}

// NewStartedAt returns a stopwatch with zero elapsed time that has been
// running since start.
func NewStartedAt[I clock.Instant[I]](c clock.Clock[I], start I) Stopwatch[I] {
	return FromRaw(c, 0, start, true)
}

// WithElapsed returns a stopped stopwatch holding elapsed.
func WithElapsed[I clock.Instant[I]](c clock.Clock[I], elapsed time.Duration) Stopwatch[I] {
	var zero I
	return FromRaw(c, elapsed, zero, false)
}

// WithElapsedStarted returns a stopwatch holding elapsed that starts running
// now.
func WithElapsedStarted[I clock.Instant[I]](c clock.Clock[I], elapsed time.Duration) Stopwatch[I] {
	s := WithElapsed(c, elapsed)
	s.start = s.now()
	s.running = true
	return s
}

// FromRaw returns a stopwatch from its raw parts. start is only used when
// running is true. A negative elapsed is treated as zero.
func FromRaw[I clock.Instant[I]](c clock.Clock[I], elapsed time.Duration, start I, running bool) Stopwatch[I] {
	s := Stopwatch[I]{clock: c, elapsed: nonNegative(elapsed), running: running}
	if running {
		s.start = start
	}
	return s
}

// RunningSince returns the instant of the latest start, or false if the
// stopwatch is stopped.
func (s Stopwatch[I]) RunningSince() (I, bool) {
	return s.start, s.running
}

// IsRunning reports whether the stopwatch is running.
func (s Stopwatch[I]) IsRunning() bool {
	return s.running
}

// IsStopped reports whether the stopwatch is stopped.
func (s Stopwatch[I]) IsStopped() bool {
	return !s.running
}

// Elapsed returns the total time elapsed, saturating at MaxDuration.
func (s Stopwatch[I]) Elapsed() time.Duration {
	if !s.running {
		return s.elapsed
	}
	return s.ElapsedAt(s.now())
}

// ElapsedAt returns the total time elapsed as measured at anchor, saturating
// at MaxDuration. An anchor before the latest start contributes nothing.
func (s Stopwatch[I]) ElapsedAt(anchor I) time.Duration {
	if !s.running {
		return s.elapsed
	}
	return saturatingAdd(s.elapsed, s.sinceStart(anchor))
}

// CheckedElapsed is like Elapsed but returns false if the total overflows.
func (s Stopwatch[I]) CheckedElapsed() (time.Duration, bool) {
	if !s.running {
		return s.elapsed, true
	}
	return s.CheckedElapsedAt(s.now())
}

// CheckedElapsedAt is like ElapsedAt but returns false if the total
// overflows.
func (s Stopwatch[I]) CheckedElapsedAt(anchor I) (time.Duration, bool) {
	if !s.running {
		return s.elapsed, true
	}
	return checkedAdd(s.elapsed, s.sinceStart(anchor))
}

func (s Stopwatch[I]) sinceStart(anchor I) time.Duration {
	return nonNegative(anchor.SaturatingDurationSince(s.start))
}

func (s Stopwatch[I]) now() I {
	if s.clock != nil {
		return s.clock.Now()
	}
	var zero I
	if c, ok := any(zero).(clock.Clock[I]); ok {
		return c.Now()
	}
	panic(fmt.Sprintf("stopwatch: no clock configured and %T is not a clock", zero))
}
