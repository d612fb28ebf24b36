package clock

import (
	"encoding/binary"
	"math"
	"time"
)

// Mono is a reading of the process monotonic clock. Monos are only useful
// for measuring elapsed time within one process, they do not correspond to
// wall clock time.
type Mono struct {
	ns int64 // nanoseconds relative to origin
}

var (
	_ Instant[Mono] = Mono{}
	_ Clock[Mono]   = Mono{}
)

// Now returns the current monotonic instant. The receiver is ignored.
func (Mono) Now() Mono {
	return Mono{ns: int64(sinceOrigin())}
}

// CheckedAdd implements Instant.
func (m Mono) CheckedAdd(d time.Duration) (Mono, bool) {
	ns, ok := addInt64(m.ns, int64(d))
	return Mono{ns: ns}, ok
}

// CheckedSub implements Instant.
func (m Mono) CheckedSub(d time.Duration) (Mono, bool) {
	if d == math.MinInt64 {
		return Mono{}, false
	}
	ns, ok := addInt64(m.ns, -int64(d))
	return Mono{ns: ns}, ok
}

// SaturatingDurationSince implements Instant.
func (m Mono) SaturatingDurationSince(earlier Mono) time.Duration {
	if m.ns <= earlier.ns {
		return 0
	}
	// m.ns > earlier.ns, so the difference is positive; it only overflows
	// when earlier is negative and far enough from m.
	if earlier.ns < 0 && m.ns > math.MaxInt64+earlier.ns {
		return MaxDuration
	}
	return time.Duration(m.ns - earlier.ns)
}

// Equal implements Instant.
func (m Mono) Equal(other Mono) bool {
	return m.ns == other.ns
}

// AppendKey implements Instant.
func (m Mono) AppendKey(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, uint64(m.ns))
}

// String renders the instant as its offset from process start.
func (m Mono) String() string {
	return "mono+" + time.Duration(m.ns).String()
}

func addInt64(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}
