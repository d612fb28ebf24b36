package stopwatch

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
)

// canonical is a stopwatch with the elapsed time folded into the start
// instant. Two running stopwatches that would report the same elapsed time
// at every anchor fold to the same start. When the fold is not
// representable the raw parts are kept and folded stays false.
type canonical[I any] struct {
	running bool
	folded  bool
	elapsed time.Duration
	start   I
}

func (s Stopwatch[I]) canonical() canonical[I] {
	if !s.running {
		return canonical[I]{elapsed: s.elapsed}
	}
	if start, ok := s.start.CheckedSub(s.elapsed); ok {
		return canonical[I]{running: true, folded: true, start: start}
	}
	return canonical[I]{running: true, elapsed: s.elapsed, start: s.start}
}

// Equal reports whether s and other are both stopped with the same elapsed
// time, or both running and report the same elapsed time at any anchor.
// The result does not depend on when it is computed. The clocks the
// stopwatches read from are not compared.
func (s Stopwatch[I]) Equal(other Stopwatch[I]) bool {
	a, b := s.canonical(), other.canonical()
	if a.running != b.running || a.folded != b.folded || a.elapsed != b.elapsed {
		return false
	}
	return !a.running || a.start.Equal(b.start)
}

// Hash returns a hash of s consistent with Equal: stopwatches that are
// Equal have the same hash.
func (s Stopwatch[I]) Hash() uint64 {
	c := s.canonical()

	var flags byte
	if c.running {
		flags |= 1
	}
	if c.folded {
		flags |= 2
	}

	buf := make([]byte, 0, 32)
	buf = append(buf, flags)
	buf = binary.BigEndian.AppendUint64(buf, uint64(c.elapsed))
	if c.running {
		buf = c.start.AppendKey(buf)
	}
	return xxhash.Sum64(buf)
}
