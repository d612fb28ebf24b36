package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ulahello/libsw/internal/config"
	"github.com/ulahello/libsw/internal/logger"
)

var (
	cfgFile   string
	logLevel  string
	logFile   string
	clockName string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "swatch",
	Short: "Time commands and keep a stopwatch in the terminal",
	Long: `swatch measures elapsed time with a pausable stopwatch.

It can time repeated runs of a command (exec) or act as an interactive
stopwatch driven from standard input (watch).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// ExitError asks main to exit with Code after reporting Err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/swatch/swatch.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env: SWATCH_LOG_LEVEL, default: info)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also log to this file, rotated when it grows (env: SWATCH_LOG_FILE)")
	rootCmd.PersistentFlags().StringVar(&clockName, "clock", "", "time source: mono, system or uptime (env: SWATCH_CLOCK, default: mono)")
}

// initConfig loads the configuration, applies the flags the user actually
// set and configures logging.
func initConfig(cmd *cobra.Command, _ []string) error {
	if _, err := config.Load(cfgFile); err != nil {
		return err
	}

	err := config.ApplyFlags(config.FlagOverrides{
		Clock:         changed(cmd, "clock", &clockName),
		LogLevel:      changed(cmd, "log-level", &logLevel),
		LogFile:       changed(cmd, "log-file", &logFile),
		MetricsFile:   changed(cmd, "metrics-file", &metricsFile),
		Repeat:        changed(cmd, "repeat", &repeat),
		Timeout:       changed(cmd, "timeout", &timeout),
		StopOnFailure: changed(cmd, "stop-on-failure", &stopOnFailure),
		Interval:      changed(cmd, "interval", &interval),
	})
	if err != nil {
		return err
	}

	cfg := config.Get()
	if err := logger.Init(cfg.LogFile); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)

	if cfg.ConfigFile != "" {
		logger.Debugf("Using config file %s", cfg.ConfigFile)
	}
	logger.Debugf("Clock: %s", cfg.Clock)
	return nil
}

// changed returns v if the named flag was set on the command line, so that
// unset flags do not override the config file or environment.
func changed[T any](cmd *cobra.Command, name string, v *T) *T {
	if cmd.Flags().Changed(name) {
		return v
	}
	return nil
}
