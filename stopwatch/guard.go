package stopwatch

import (
	"time"

	"github.com/ulahello/libsw/clock"
)

// Guard ties a running stopwatch to a scope. Releasing the guard stops the
// stopwatch:
//
//	g, err := sw.Guard()
//	if err != nil {
//		return err
//	}
//	defer g.Release()
//
// While the guard is held it is the only thing that should touch the
// stopwatch. Stopping the stopwatch by hand before release is allowed; the
// release then does nothing.
type Guard[I clock.Instant[I]] struct {
	// invariant: sw is running until released, unless stopped by hand
	sw       *Stopwatch[I]
	released bool
}

// NewGuard returns a guard over an already running stopwatch. It returns
// ErrGuardOnStopped if sw is stopped.
func NewGuard[I clock.Instant[I]](sw *Stopwatch[I]) (*Guard[I], error) {
	if sw.IsStopped() {
		return nil, ErrGuardOnStopped
	}
	return &Guard[I]{sw: sw}, nil
}

// Elapsed returns the guarded stopwatch's elapsed time.
func (g *Guard[I]) Elapsed() time.Duration {
	return g.sw.Elapsed()
}

// ElapsedAt returns the guarded stopwatch's elapsed time at anchor.
func (g *Guard[I]) ElapsedAt(anchor I) time.Duration {
	return g.sw.ElapsedAt(anchor)
}

// CheckedElapsed returns the guarded stopwatch's elapsed time, or false on
// overflow.
func (g *Guard[I]) CheckedElapsed() (time.Duration, bool) {
	return g.sw.CheckedElapsed()
}

// CheckedElapsedAt returns the guarded stopwatch's elapsed time at anchor,
// or false on overflow.
func (g *Guard[I]) CheckedElapsedAt(anchor I) (time.Duration, bool) {
	return g.sw.CheckedElapsedAt(anchor)
}

// Release stops the guarded stopwatch. Calls after the first do nothing.
func (g *Guard[I]) Release() {
	if g.released {
		return
	}
	g.released = true
	// ErrStopWhileStopped only means the caller stopped it first.
	_ = g.sw.Stop()
}

// ReleaseAt is like Release but stops the stopwatch at anchor.
func (g *Guard[I]) ReleaseAt(anchor I) {
	if g.released {
		return
	}
	g.released = true
	_ = g.sw.StopAt(anchor)
}

// Released reports whether Release or ReleaseAt has been called.
func (g *Guard[I]) Released() bool {
	return g.released
}
