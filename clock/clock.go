// Package clock defines the timekeeping capability a stopwatch is written
// against, along with adapters for the clocks Go programs usually have at hand.
//
// A clock is split in two parts: the Instant, an opaque point in time that
// knows how to do duration arithmetic with other instants of the same type,
// and the Clock, which produces the current Instant. Every adapter in this
// package is its own Clock, so its zero value can be used wherever a
// Clock[I] is expected:
//
//	var c clock.Clock[clock.Mono] = clock.Mono{}
//	now := c.Now()
package clock

import (
	"math"
	"time"
)

// MaxDuration is the largest representable time.Duration.
const MaxDuration = time.Duration(math.MaxInt64)

// Instant is a point in time of type I.
type Instant[I any] interface {
	// CheckedAdd returns the instant d after the receiver, or false if the
	// result is not representable.
	CheckedAdd(d time.Duration) (I, bool)

	// CheckedSub returns the instant d before the receiver, or false if the
	// result is not representable.
	CheckedSub(d time.Duration) (I, bool)

	// SaturatingDurationSince returns the duration elapsed since earlier.
	// It returns zero if earlier is after the receiver and MaxDuration if
	// the true duration does not fit.
	SaturatingDurationSince(earlier I) time.Duration

	// Equal reports whether both instants denote the same point in time.
	Equal(other I) bool

	// AppendKey appends a byte encoding of the instant to b. Equal instants
	// must append identical bytes.
	AppendKey(b []byte) []byte
}

// Clock provides the current instant.
type Clock[I any] interface {
	// Now returns the current instant.
	Now() I
}

// origin is the process-wide reference point for Mono and Uptime. It carries
// a monotonic clock reading, so durations measured against it are monotonic.
var origin = time.Now()

// sinceOrigin returns the monotonic time elapsed since origin.
func sinceOrigin() time.Duration {
	return time.Since(origin)
}
