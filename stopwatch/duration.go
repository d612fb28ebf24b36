package stopwatch

import (
	"time"

	"github.com/ulahello/libsw/clock"
)

// MaxDuration is the largest elapsed time a stopwatch can hold.
const MaxDuration = clock.MaxDuration

// Elapsed time is never negative, and every helper below assumes its
// arguments went through nonNegative first.

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func saturatingAdd(a, b time.Duration) time.Duration {
	if sum, ok := checkedAdd(a, b); ok {
		return sum
	}
	return MaxDuration
}

func checkedAdd(a, b time.Duration) (time.Duration, bool) {
	if b > MaxDuration-a {
		return 0, false
	}
	return a + b, true
}

func saturatingSub(a, b time.Duration) time.Duration {
	if diff, ok := checkedSub(a, b); ok {
		return diff
	}
	return 0
}

func checkedSub(a, b time.Duration) (time.Duration, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}
