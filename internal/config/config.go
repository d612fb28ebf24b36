package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags
// Default "dev" is used for development builds
var Version = "dev"

// Clock sources selectable with SWATCH_CLOCK / --clock.
const (
	ClockMono   = "mono"
	ClockSystem = "system"
	ClockUptime = "uptime"
)

// Config holds the swatch configuration. Values come from, in increasing
// precedence: defaults, the config file, SWATCH_* environment variables and
// command-line flags.
type Config struct {
	// Clock selects the time source: "mono", "system" or "uptime" (default: "mono")
	Clock string

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error" (default: "info")
	LogLevel string

	// LogFile is an optional log file path; rotated when it grows (default: none)
	LogFile string

	// MetricsFile, when set, receives Prometheus metrics in text format after exec
	MetricsFile string

	// Repeat is how many times exec runs the command (default: 1)
	Repeat int

	// Timeout bounds the whole exec sequence; 0 disables it (default: 0)
	Timeout time.Duration

	// StopOnFailure ends exec at the first failing run (default: false)
	StopOnFailure bool

	// Interval is how often watch prints the elapsed time (default: 1s)
	Interval time.Duration

	// ConfigFile is the file the configuration was read from, if any
	ConfigFile string
}

// Global singleton
var cfg *Config

// Load reads configuration with sensible defaults. configFile may be empty,
// in which case $HOME/.config/swatch/swatch.yaml is used if it exists.
// Should be called once at startup.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("clock", ClockMono)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("repeat", 1)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("stop_on_failure", false)
	v.SetDefault("interval", time.Second)

	v.SetEnvPrefix("SWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("swatch")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "swatch"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	c := &Config{
		Clock:         strings.ToLower(v.GetString("clock")),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
		LogFile:       v.GetString("log_file"),
		MetricsFile:   v.GetString("metrics_file"),
		Repeat:        v.GetInt("repeat"),
		Timeout:       v.GetDuration("timeout"),
		StopOnFailure: v.GetBool("stop_on_failure"),
		Interval:      v.GetDuration("interval"),
		ConfigFile:    v.ConfigFileUsed(),
	}
	normalize(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg = c
	return cfg, nil
}

// normalize replaces out of range values with defaults.
func normalize(c *Config) {
	// Validate log level
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		c.LogLevel = "info" // Fall back to info for invalid values
	}
	if c.Repeat < 1 {
		c.Repeat = 1
	}
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}

// Validate reports settings that cannot be corrected silently.
func (c *Config) Validate() error {
	switch c.Clock {
	case ClockMono, ClockSystem, ClockUptime:
		return nil
	default:
		return fmt.Errorf("unknown clock %q: want %s, %s or %s", c.Clock, ClockMono, ClockSystem, ClockUptime)
	}
}

// Get returns the current configuration. Panics if Load() hasn't been called.
func Get() *Config {
	if cfg == nil {
		panic("config.Load() must be called before config.Get()")
	}
	return cfg
}

// SetForTesting allows tests to set the global config without calling Load().
// This should ONLY be used in test code.
func SetForTesting(c *Config) {
	cfg = c
}

// NewTestConfig returns a minimal Config suitable for unit tests.
func NewTestConfig() *Config {
	return &Config{
		Clock:         ClockUptime,
		LogLevel:      "debug",
		LogFile:       "",
		MetricsFile:   "",
		Repeat:        1,
		Timeout:       0,
		StopOnFailure: false,
		Interval:      time.Second,
	}
}

// FlagOverrides holds command-line flag values that can override the file
// and environment. nil fields are left alone.
type FlagOverrides struct {
	Clock         *string
	LogLevel      *string
	LogFile       *string
	MetricsFile   *string
	Repeat        *int
	Timeout       *time.Duration
	StopOnFailure *bool
	Interval      *time.Duration
}

// ApplyFlags applies command-line flag overrides to the configuration.
// Should be called after Load() and after flag parsing.
func ApplyFlags(flags FlagOverrides) error {
	if cfg == nil {
		return nil
	}

	if flags.Clock != nil && *flags.Clock != "" {
		cfg.Clock = strings.ToLower(*flags.Clock)
	}
	if flags.LogLevel != nil && *flags.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(*flags.LogLevel)
	}
	if flags.LogFile != nil && *flags.LogFile != "" {
		cfg.LogFile = *flags.LogFile
	}
	if flags.MetricsFile != nil && *flags.MetricsFile != "" {
		cfg.MetricsFile = *flags.MetricsFile
	}
	if flags.Repeat != nil && *flags.Repeat != 0 {
		cfg.Repeat = *flags.Repeat
	}
	if flags.Timeout != nil && *flags.Timeout != 0 {
		cfg.Timeout = *flags.Timeout
	}
	if flags.StopOnFailure != nil {
		cfg.StopOnFailure = *flags.StopOnFailure
	}
	if flags.Interval != nil && *flags.Interval != 0 {
		cfg.Interval = *flags.Interval
	}

	normalize(cfg)
	return cfg.Validate()
}
