// Package testutil provides test utilities: a controllable clock and a fake
// command executor.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ulahello/libsw/clock"
	"github.com/ulahello/libsw/internal/runner"
)

// =============================================================================
// MockClock - Testable time abstraction
// =============================================================================

// MockClock implements clock.Clock[clock.Uptime] for testing, providing
// deterministic control over the current instant. Time only moves when the
// test moves it, and it may be moved backwards to imitate a clock that is
// not monotonic.
type MockClock struct {
	mu    sync.Mutex
	now   clock.Uptime
	reads int
}

// Compile-time assertion that MockClock implements clock.Clock
var _ clock.Clock[clock.Uptime] = (*MockClock)(nil)

// DefaultStart is where NewMockClock starts. It is far enough from zero that
// tests can rewind or subtract without hitting the bottom of the range.
const DefaultStart = clock.Uptime(time.Hour)

// NewMockClock creates a new MockClock at DefaultStart.
func NewMockClock() *MockClock {
	return NewMockClockAt(DefaultStart)
}

// NewMockClockAt creates a new MockClock at a specific instant.
func NewMockClockAt(u clock.Uptime) *MockClock {
	return &MockClock{now: u}
}

// Now returns the mock's current instant.
func (m *MockClock) Now() clock.Uptime {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.now
}

// Peek returns the current instant without counting it as a read.
func (m *MockClock) Peek() clock.Uptime {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetNow sets the mock's current instant.
func (m *MockClock) SetNow(u clock.Uptime) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = u
}

// Advance moves time forward by d and returns the new instant. It stops at
// the top of the range instead of wrapping.
func (m *MockClock) Advance(d time.Duration) clock.Uptime {
	m.mu.Lock()
	defer m.mu.Unlock()
	if next, ok := m.now.CheckedAdd(d); ok {
		m.now = next
	} else {
		m.now = clock.Uptime(^uint64(0))
	}
	return m.now
}

// Rewind moves time backward by d and returns the new instant. It stops at
// zero.
func (m *MockClock) Rewind(d time.Duration) clock.Uptime {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.now.CheckedSub(d); ok {
		m.now = prev
	} else {
		m.now = 0
	}
	return m.now
}

// Reads returns how many times Now has been called.
func (m *MockClock) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// =============================================================================
// MockExecutor - Fake command execution
// =============================================================================

// MockExecutor implements runner.Executor for testing. ExecuteFunc decides
// the outcome of each call; when it is nil every command succeeds. If Clock
// is set, each call advances it by Step so runs take a known amount of time.
type MockExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd runner.Command) (int, error)
	Clock       *MockClock
	Step        time.Duration

	// Call tracking for assertions
	mu    sync.Mutex
	calls []runner.Command
}

var _ runner.Executor = (*MockExecutor)(nil)

// Execute records the call, advances the clock and delegates to ExecuteFunc.
func (m *MockExecutor) Execute(ctx context.Context, cmd runner.Command) (int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()

	if m.Clock != nil {
		m.Clock.Advance(m.Step)
	}
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return 0, nil
}

// CallCount returns the number of Execute calls so far.
func (m *MockExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the commands passed to Execute.
func (m *MockExecutor) Calls() []runner.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]runner.Command, len(m.calls))
	copy(out, m.calls)
	return out
}
