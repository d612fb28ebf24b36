package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so a developer's own config
// file cannot leak into the test, and restores the global config.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	original := cfg
	t.Cleanup(func() { cfg = original })
}

// =============================================================================
// Load tests
// =============================================================================

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ClockMono, c.Clock)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.LogFile)
	assert.Empty(t, c.MetricsFile)
	assert.Equal(t, 1, c.Repeat)
	assert.Zero(t, c.Timeout)
	assert.False(t, c.StopOnFailure)
	assert.Equal(t, time.Second, c.Interval)
	assert.Empty(t, c.ConfigFile)
	assert.Same(t, c, Get())
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("SWATCH_CLOCK", "System")
	t.Setenv("SWATCH_LOG_LEVEL", "debug")
	t.Setenv("SWATCH_REPEAT", "4")
	t.Setenv("SWATCH_TIMEOUT", "90s")
	t.Setenv("SWATCH_INTERVAL", "250ms")
	t.Setenv("SWATCH_STOP_ON_FAILURE", "true")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ClockSystem, c.Clock)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 4, c.Repeat)
	assert.Equal(t, 90*time.Second, c.Timeout)
	assert.Equal(t, 250*time.Millisecond, c.Interval)
	assert.True(t, c.StopOnFailure)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "swatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock: uptime\nrepeat: 3\ninterval: 2s\nmetrics_file: /tmp/swatch.prom\n"), 0600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ClockUptime, c.Clock)
	assert.Equal(t, 3, c.Repeat)
	assert.Equal(t, 2*time.Second, c.Interval)
	assert.Equal(t, "/tmp/swatch.prom", c.MetricsFile)
	assert.Equal(t, path, c.ConfigFile)
}

func TestLoad_EnvironmentBeatsConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "swatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repeat: 3\n"), 0600))
	t.Setenv("SWATCH_REPEAT", "7")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Repeat)
}

func TestLoad_HomeConfigFile(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("HOME"), ".config", "swatch")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swatch.yaml"), []byte("log_level: warn\n"), 0600))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidClock(t *testing.T) {
	isolate(t)
	t.Setenv("SWATCH_CLOCK", "sundial")

	_, err := Load("")
	assert.ErrorContains(t, err, "sundial")
}

func TestLoad_NormalizesOutOfRangeValues(t *testing.T) {
	isolate(t)
	t.Setenv("SWATCH_LOG_LEVEL", "chatty")
	t.Setenv("SWATCH_REPEAT", "-2")
	t.Setenv("SWATCH_INTERVAL", "0s")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 1, c.Repeat)
	assert.Equal(t, time.Second, c.Interval)
}

// =============================================================================
// Get / SetForTesting tests
// =============================================================================

func TestGet_PanicsBeforeLoad(t *testing.T) {
	isolate(t)
	cfg = nil
	assert.Panics(t, func() { Get() })
}

func TestSetForTesting(t *testing.T) {
	isolate(t)
	c := NewTestConfig()
	SetForTesting(c)
	assert.Same(t, c, Get())
	assert.NoError(t, c.Validate())
}

// =============================================================================
// ApplyFlags tests
// =============================================================================

func TestApplyFlags_Overrides(t *testing.T) {
	isolate(t)
	SetForTesting(NewTestConfig())

	clk := "SYSTEM"
	repeat := 5
	timeout := time.Minute
	stop := true
	interval := 100 * time.Millisecond
	metrics := "out.prom"

	err := ApplyFlags(FlagOverrides{
		Clock:         &clk,
		Repeat:        &repeat,
		Timeout:       &timeout,
		StopOnFailure: &stop,
		Interval:      &interval,
		MetricsFile:   &metrics,
	})
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, ClockSystem, c.Clock)
	assert.Equal(t, 5, c.Repeat)
	assert.Equal(t, time.Minute, c.Timeout)
	assert.True(t, c.StopOnFailure)
	assert.Equal(t, 100*time.Millisecond, c.Interval)
	assert.Equal(t, "out.prom", c.MetricsFile)
	assert.Equal(t, "debug", c.LogLevel, "unset flags leave values alone")
}

func TestApplyFlags_EmptyValuesIgnored(t *testing.T) {
	isolate(t)
	SetForTesting(NewTestConfig())

	empty := ""
	zero := 0
	require.NoError(t, ApplyFlags(FlagOverrides{Clock: &empty, Repeat: &zero}))

	assert.Equal(t, ClockUptime, Get().Clock)
	assert.Equal(t, 1, Get().Repeat)
}

func TestApplyFlags_InvalidClock(t *testing.T) {
	isolate(t)
	SetForTesting(NewTestConfig())

	bad := "water"
	assert.Error(t, ApplyFlags(FlagOverrides{Clock: &bad}))
}

func TestApplyFlags_NoConfigLoaded(t *testing.T) {
	isolate(t)
	cfg = nil
	assert.NoError(t, ApplyFlags(FlagOverrides{}))
}
