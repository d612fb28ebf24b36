package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ulahello/libsw/clock"
	"github.com/ulahello/libsw/internal/config"
	"github.com/ulahello/libsw/internal/logger"
	"github.com/ulahello/libsw/internal/metrics"
	"github.com/ulahello/libsw/internal/runner"
)

var (
	repeat        int
	timeout       time.Duration
	stopOnFailure bool
	metricsFile   string
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- <command> [args...]",
	Short: "Time one or more runs of a command",
	Long: `Exec runs a command, optionally several times in a row, and times every run
with its own stopwatch. The runs are summarized in a table with the total and
mean elapsed time.

The exit status is non-zero if any run failed.

Example:
  swatch exec -- make test
  swatch exec --repeat 5 --clock system -- ./bench.sh
  swatch exec --timeout 10m --metrics-file /var/lib/node_exporter/swatch.prom -- backup.sh`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().IntVarP(&repeat, "repeat", "n", 1, "number of runs (env: SWATCH_REPEAT)")
	execCmd.Flags().DurationVar(&timeout, "timeout", 0, "stop after this long, 0 for no limit (env: SWATCH_TIMEOUT)")
	execCmd.Flags().BoolVar(&stopOnFailure, "stop-on-failure", false, "stop at the first failed run (env: SWATCH_STOP_ON_FAILURE)")
	execCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file (env: SWATCH_METRICS_FILE)")
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	command := runner.Command{Name: args[0], Args: args[1:]}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	exec := &runner.ProcessExecutor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	rec := metrics.NewRecorder()
	opts := runner.Options{Repeat: cfg.Repeat, StopOnFailure: cfg.StopOnFailure}

	summary, runErr := timeRuns(ctx, cfg.Clock, exec, rec, command, opts)
	if len(summary.Results) > 0 {
		if err := printSummary(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
	}

	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Errorf("Failed to write metrics: %v", err)
			return err
		}
		logger.Debugf("Metrics written to %s", cfg.MetricsFile)
	}

	if runErr != nil {
		return fmt.Errorf("exec %s: %w", command.String(), runErr)
	}
	return exitStatus(summary)
}

// timeRuns runs command with the named clock.
func timeRuns(ctx context.Context, clockName string, exec runner.Executor, rec runner.Recorder, command runner.Command, opts runner.Options) (runner.Summary, error) {
	switch clockName {
	case config.ClockSystem:
		return runner.New[clock.System](clock.System{}, exec, rec).Run(ctx, command, opts)
	case config.ClockUptime:
		return runner.New[clock.Uptime](clock.Uptime(0), exec, rec).Run(ctx, command, opts)
	case config.ClockMono:
		return runner.New[clock.Mono](clock.Mono{}, exec, rec).Run(ctx, command, opts)
	default:
		return runner.Summary{}, fmt.Errorf("unknown clock %q", clockName)
	}
}

// printSummary renders one table row per run followed by the totals.
func printSummary(w io.Writer, s runner.Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Run", "ID", "Exit", "Elapsed")

	for _, res := range s.Results {
		exit := strconv.Itoa(res.ExitCode)
		if res.Err != nil {
			exit = "error"
		}
		if err := table.Append(strconv.Itoa(res.Run), res.ID, exit, formatElapsed(res.Elapsed)); err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	fmt.Fprintf(w, "\nTotal: %s  Mean: %s  Failed: %d/%d\n",
		formatElapsed(s.Total), formatElapsed(s.Mean()), s.Failures(), len(s.Results))
	return nil
}

// exitStatus returns nil if every run succeeded. Otherwise the exit code of
// the first failed run becomes swatch's own, or 1 if that run never started.
func exitStatus(s runner.Summary) error {
	for _, res := range s.Results {
		if !res.Failed() {
			continue
		}
		code := res.ExitCode
		if code <= 0 || code > 255 {
			code = 1
		}
		return &ExitError{
			Code: code,
			Err:  fmt.Errorf("%d of %d runs of %s failed", s.Failures(), len(s.Results), s.Command.String()),
		}
	}
	return nil
}

// formatElapsed renders d as hours:minutes:seconds.milliseconds.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	ms := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
