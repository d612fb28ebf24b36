package stopwatch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulahello/libsw/clock"
	"github.com/ulahello/libsw/stopwatch"
)

// =============================================================================
// Start / Stop tests
// =============================================================================

func TestBasicCycle(t *testing.T) {
	clk := newClock()
	sw := stopwatch.New[clock.Uptime](clk)

	require.NoError(t, sw.Start())
	clk.Advance(100 * time.Millisecond)
	require.NoError(t, sw.Stop())

	assert.True(t, sw.IsStopped())
	assert.GreaterOrEqual(t, sw.Elapsed(), 100*time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, sw.Elapsed())
}

func TestStart_TwiceFails(t *testing.T) {
	clk := newClock()
	sw := stopwatch.New[clock.Uptime](clk)

	require.NoError(t, sw.Start())
	clk.Advance(time.Second)
	before := sw.Elapsed()
	start, _ := sw.RunningSince()

	assert.Equal(t, stopwatch.ErrStartWhileRunning, sw.Start())
	assert.Equal(t, stopwatch.ErrStartWhileRunning, sw.StartAt(after(time.Hour)))

	again, _ := sw.RunningSince()
	assert.Equal(t, start, again, "failed start must not re-anchor")
	assert.Equal(t, before, sw.Elapsed())
}

func TestStop_TwiceFails(t *testing.T) {
	clk := newClock()
	sw := stopwatch.NewStarted[clock.Uptime](clk)
	clk.Advance(time.Second)

	require.NoError(t, sw.Stop())
	clk.Advance(time.Second)

	assert.Equal(t, stopwatch.ErrStopWhileStopped, sw.Stop())
	assert.Equal(t, stopwatch.ErrStopWhileStopped, sw.StopAt(after(time.Hour)))
	assert.Equal(t, time.Second, sw.Elapsed())
}

func TestStopAt_BeforeStartAddsNothing(t *testing.T) {
	const d = 3 * time.Second
	sw := stopwatch.WithElapsed[clock.Uptime](newClock(), d)

	require.NoError(t, sw.StartAt(t0))
	require.NoError(t, sw.StopAt(before(time.Second)))

	assert.True(t, sw.IsStopped())
	assert.Equal(t, d, sw.Elapsed())
}

func TestStartAt_FutureAnchor(t *testing.T) {
	sw := stopwatch.New[clock.Uptime](newClock())
	require.NoError(t, sw.StartAt(after(time.Second)))

	assert.Zero(t, sw.ElapsedAt(t0))
	assert.Zero(t, sw.ElapsedAt(after(time.Second)))
	assert.Equal(t, 2*time.Second, sw.ElapsedAt(after(3*time.Second)))
}

func TestStartStop_SynchronizedAnchors(t *testing.T) {
	clk := newClock()
	a := stopwatch.WithElapsed[clock.Uptime](clk, time.Second)
	b := stopwatch.New[clock.Uptime](clk)

	anchor := clk.Now()
	require.NoError(t, a.StartAt(anchor))
	require.NoError(t, b.StartAt(anchor))

	end := clk.Advance(5 * time.Second)
	require.NoError(t, a.StopAt(end))
	require.NoError(t, b.StopAt(end))

	assert.Equal(t, 6*time.Second, a.Elapsed())
	assert.Equal(t, 5*time.Second, b.Elapsed())
}

func TestStop_Accumulates(t *testing.T) {
	clk := newClock()
	sw := stopwatch.New[clock.Uptime](clk)

	for i := 0; i < 3; i++ {
		require.NoError(t, sw.Start())
		clk.Advance(time.Second)
		require.NoError(t, sw.Stop())
		clk.Advance(time.Minute) // stopped time is not counted
	}

	assert.Equal(t, 3*time.Second, sw.Elapsed())
}

func TestStateTotality(t *testing.T) {
	clk := newClock()
	sw := stopwatch.New[clock.Uptime](clk)

	check := func(step string) {
		t.Helper()
		assert.NotEqual(t, sw.IsRunning(), sw.IsStopped(), "exactly one state must hold after %s", step)
	}

	check("new")
	_ = sw.Start()
	check("start")
	_ = sw.Start()
	check("second start")
	sw.Toggle()
	check("toggle")
	_ = sw.Stop()
	check("stop while stopped")
	sw.ResetInPlace()
	check("reset in place")
	sw.SetInPlace(time.Second)
	check("set in place")
	sw.Toggle()
	check("toggle")
	sw.Reset()
	check("reset")
}

// =============================================================================
// CheckedStop tests
// =============================================================================

func TestCheckedStop_Overflow(t *testing.T) {
	clk := newClock()
	sw := stopwatch.WithElapsed[clock.Uptime](clk, stopwatch.MaxDuration)
	require.NoError(t, sw.Start())
	clk.Advance(time.Second)

	stopped, err := sw.CheckedStop()
	require.NoError(t, err)
	assert.False(t, stopped)
	assert.True(t, sw.IsRunning(), "a failed checked stop leaves the stopwatch running")
	start, _ := sw.RunningSince()
	assert.Equal(t, t0, start)
	assert.Equal(t, stopwatch.MaxDuration, sw.ElapsedAt(t0))

	// The saturating stop succeeds on the same stopwatch.
	require.NoError(t, sw.Stop())
	assert.True(t, sw.IsStopped())
	assert.Equal(t, stopwatch.MaxDuration, sw.Elapsed())
}

func TestCheckedStop_Success(t *testing.T) {
	clk := newClock()
	sw := stopwatch.NewStarted[clock.Uptime](clk)
	clk.Advance(time.Second)

	stopped, err := sw.CheckedStop()
	require.NoError(t, err)
	assert.True(t, stopped)
	assert.Equal(t, time.Second, sw.Elapsed())
}

func TestCheckedStop_WhileStopped(t *testing.T) {
	sw := stopwatch.New[clock.Uptime](newClock())

	stopped, err := sw.CheckedStop()
	assert.False(t, stopped)
	assert.Equal(t, stopwatch.ErrStopWhileStopped, err)

	stopped, err = sw.CheckedStopAt(t0)
	assert.False(t, stopped)
	assert.Equal(t, stopwatch.ErrStopWhileStopped, err)
}

func TestCheckedStopAt_AnchorBeforeStart(t *testing.T) {
	sw := stopwatch.FromRaw[clock.Uptime](newClock(), stopwatch.MaxDuration, t0, true)

	// Nothing accrues before the start, so even a full stopwatch can stop.
	stopped, err := sw.CheckedStopAt(before(time.Second))
	require.NoError(t, err)
	assert.True(t, stopped)
	assert.Equal(t, stopwatch.MaxDuration, sw.Elapsed())
}

// =============================================================================
// Toggle tests
// =============================================================================

func TestToggle(t *testing.T) {
	clk := newClock()
	sw := stopwatch.New[clock.Uptime](clk)

	sw.Toggle()
	assert.True(t, sw.IsRunning())
	clk.Advance(time.Second)

	sw.Toggle()
	assert.True(t, sw.IsStopped())
	assert.Equal(t, time.Second, sw.Elapsed())
}

func TestToggleAt(t *testing.T) {
	sw := stopwatch.New[clock.Uptime](newClock())

	sw.ToggleAt(t0)
	require.True(t, sw.IsRunning())
	sw.ToggleAt(after(2 * time.Second))
	require.True(t, sw.IsStopped())

	assert.Equal(t, 2*time.Second, sw.Elapsed())
}

// =============================================================================
// Reset / Set / Replace tests
// =============================================================================

func TestReset(t *testing.T) {
	clk := newClock()
	sw := stopwatch.WithElapsedStarted[clock.Uptime](clk, time.Second)
	clk.Advance(time.Second)

	sw.Reset()
	assert.True(t, sw.IsStopped())
	assert.Zero(t, sw.Elapsed())

	// The clock survives a reset.
	clk.Advance(time.Minute)
	require.NoError(t, sw.Start())
	start, _ := sw.RunningSince()
	assert.Equal(t, clk.Peek(), start)
}

func TestResetInPlace_WhileRunning(t *testing.T) {
	clk := newClock()
	sw := stopwatch.New[clock.Uptime](clk)
	require.NoError(t, sw.Start())
	clk.Advance(200 * time.Millisecond)
	require.Equal(t, 200*time.Millisecond, sw.Elapsed())

	sw.ResetInPlace()

	assert.True(t, sw.IsRunning())
	assert.Less(t, sw.Elapsed(), time.Millisecond)

	clk.Advance(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, sw.Elapsed())
}

func TestResetInPlace_WhileStopped(t *testing.T) {
	clk := newClock()
	sw := stopwatch.WithElapsed[clock.Uptime](clk, time.Second)

	sw.ResetInPlace()
	assert.True(t, sw.IsStopped())
	assert.Zero(t, sw.Elapsed())
	assert.Zero(t, clk.Reads(), "a stopped stopwatch has nothing to re-anchor")
}

func TestResetInPlaceAt(t *testing.T) {
	sw := stopwatch.FromRaw[clock.Uptime](newClock(), time.Minute, t0, true)

	sw.ResetInPlaceAt(after(time.Second))

	start, ok := sw.RunningSince()
	require.True(t, ok)
	assert.Equal(t, after(time.Second), start)
	assert.Equal(t, time.Second, sw.ElapsedAt(after(2*time.Second)))
}

func TestSet(t *testing.T) {
	clk := newClock()
	sw := stopwatch.NewStarted[clock.Uptime](clk)

	sw.Set(200 * time.Millisecond)

	assert.True(t, sw.IsStopped())
	clk.Advance(time.Second)
	assert.Equal(t, 200*time.Millisecond, sw.Elapsed())
}

func TestSetInPlace(t *testing.T) {
	clk := newClock()

	stopped := stopwatch.New[clock.Uptime](clk)
	stopped.SetInPlace(time.Second)
	assert.True(t, stopped.IsStopped())
	assert.Equal(t, time.Second, stopped.Elapsed())

	running := stopwatch.NewStarted[clock.Uptime](clk)
	clk.Advance(time.Minute)
	running.SetInPlace(time.Second)
	assert.True(t, running.IsRunning())
	assert.Equal(t, time.Second, running.Elapsed())
	clk.Advance(time.Second)
	assert.Equal(t, 2*time.Second, running.Elapsed())
}

func TestSetInPlaceAt(t *testing.T) {
	sw := stopwatch.NewStartedAt[clock.Uptime](newClock(), t0)

	sw.SetInPlaceAt(5*time.Second, after(time.Minute))

	assert.Equal(t, 5*time.Second, sw.ElapsedAt(after(time.Minute)))
	assert.Equal(t, 6*time.Second, sw.ElapsedAt(after(time.Minute+time.Second)))

	sw.SetInPlaceAt(-time.Second, after(time.Minute))
	assert.Zero(t, sw.ElapsedAt(after(time.Minute)), "negative elapsed is treated as zero")
}

func TestReplace(t *testing.T) {
	sw := stopwatch.WithElapsed[clock.Uptime](newClock(), 3*time.Second)

	previous := sw.Replace(time.Second)

	assert.Equal(t, 3*time.Second, previous)
	assert.Equal(t, time.Second, sw.Elapsed())
}

func TestReplace_Running(t *testing.T) {
	clk := newClock()
	sw := stopwatch.NewStarted[clock.Uptime](clk)
	clk.Advance(4 * time.Second)

	previous := sw.Replace(time.Second)

	assert.Equal(t, 4*time.Second, previous)
	assert.True(t, sw.IsStopped())
	assert.Equal(t, time.Second, sw.Elapsed())
}

func TestReplaceAt(t *testing.T) {
	sw := stopwatch.NewStartedAt[clock.Uptime](newClock(), t0)

	previous := sw.ReplaceAt(0, after(7*time.Second))

	assert.Equal(t, 7*time.Second, previous)
	assert.True(t, sw.IsStopped())
	assert.Zero(t, sw.Elapsed())
}
