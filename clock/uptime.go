package clock

import (
	"encoding/binary"
	"math"
	"time"
)

// Uptime is the number of nanoseconds elapsed since the process started,
// measured on the monotonic clock. Unlike Mono it cannot go below zero, so
// subtracting past process start fails.
type Uptime uint64

var (
	_ Instant[Uptime] = Uptime(0)
	_ Clock[Uptime]   = Uptime(0)
)

// Now returns the current uptime. The receiver is ignored.
func (Uptime) Now() Uptime {
	d := sinceOrigin()
	if d < 0 {
		return 0
	}
	return Uptime(d)
}

// CheckedAdd implements Instant.
func (u Uptime) CheckedAdd(d time.Duration) (Uptime, bool) {
	if d < 0 {
		return u.CheckedSub(-d)
	}
	if uint64(u) > math.MaxUint64-uint64(d) {
		return 0, false
	}
	return u + Uptime(d), true
}

// CheckedSub implements Instant.
func (u Uptime) CheckedSub(d time.Duration) (Uptime, bool) {
	if d < 0 {
		if d == math.MinInt64 {
			return 0, false
		}
		return u.CheckedAdd(-d)
	}
	if uint64(d) > uint64(u) {
		return 0, false
	}
	return u - Uptime(d), true
}

// SaturatingDurationSince implements Instant.
func (u Uptime) SaturatingDurationSince(earlier Uptime) time.Duration {
	if u <= earlier {
		return 0
	}
	diff := uint64(u - earlier)
	if diff > math.MaxInt64 {
		return MaxDuration
	}
	return time.Duration(diff)
}

// Equal implements Instant.
func (u Uptime) Equal(other Uptime) bool {
	return u == other
}

// AppendKey implements Instant.
func (u Uptime) AppendKey(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, uint64(u))
}

// Duration returns u as a duration since process start, saturating at
// MaxDuration.
func (u Uptime) Duration() time.Duration {
	if uint64(u) > math.MaxInt64 {
		return MaxDuration
	}
	return time.Duration(u)
}
