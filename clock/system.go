package clock

import (
	"encoding/binary"
	"time"
)

// System is a wall clock instant. The wall clock is not monotonic: it can
// be adjusted forwards or backwards at any time, so a later call to Now may
// return an earlier instant. SaturatingDurationSince returns zero in that
// case.
type System struct {
	t time.Time
}

var (
	_ Instant[System] = System{}
	_ Clock[System]   = System{}
)

// SystemAt returns the System instant for t. Any monotonic clock reading in t
// is discarded.
func SystemAt(t time.Time) System {
	return System{t: t.Round(0)}
}

// Now returns the current wall clock instant. The receiver is ignored.
func (System) Now() System {
	return SystemAt(time.Now())
}

// Time returns the instant as a time.Time.
func (s System) Time() time.Time {
	return s.t
}

// CheckedAdd implements Instant.
func (s System) CheckedAdd(d time.Duration) (System, bool) {
	r := s.t.Add(d)
	// time.Time.Add wraps silently; Sub saturates, so a wrapped result
	// shows up as a mismatch.
	if r.Sub(s.t) != d {
		return System{}, false
	}
	return System{t: r}, true
}

// CheckedSub implements Instant.
func (s System) CheckedSub(d time.Duration) (System, bool) {
	if d == minDuration {
		return System{}, false
	}
	return s.CheckedAdd(-d)
}

// SaturatingDurationSince implements Instant.
func (s System) SaturatingDurationSince(earlier System) time.Duration {
	d := s.t.Sub(earlier.t)
	if d < 0 {
		return 0
	}
	return d
}

// Equal implements Instant.
func (s System) Equal(other System) bool {
	return s.t.Equal(other.t)
}

// AppendKey implements Instant.
func (s System) AppendKey(b []byte) []byte {
	b = binary.BigEndian.AppendUint64(b, uint64(s.t.Unix()))
	return binary.BigEndian.AppendUint32(b, uint32(s.t.Nanosecond()))
}

// String formats the instant as RFC 3339 with nanoseconds.
func (s System) String() string {
	return s.t.Format(time.RFC3339Nano)
}

const minDuration = time.Duration(-1 << 63)
