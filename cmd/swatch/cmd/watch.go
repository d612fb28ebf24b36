package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ulahello/libsw/clock"
	"github.com/ulahello/libsw/internal/config"
	"github.com/ulahello/libsw/internal/logger"
	"github.com/ulahello/libsw/stopwatch"
)

var interval time.Duration

const watchHelp = "p or enter: pause/resume, r: reset, s: show, q: quit"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run an interactive stopwatch",
	Long: `Watch starts a stopwatch and prints its elapsed time every interval while it
runs. Commands are read one per line from standard input:

  p or empty line   pause or resume
  r                 reset to zero, keeping it running or paused
  s                 show the elapsed time
  q                 quit

Example:
  swatch watch
  swatch watch --interval 100ms --clock system`,
	Args: cobra.NoArgs,
	RunE: runWatchCmd,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&interval, "interval", time.Second, "how often to print the elapsed time (env: SWATCH_INTERVAL)")
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.Get()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	switch cfg.Clock {
	case config.ClockSystem:
		return watch[clock.System](ctx, clock.System{}, os.Stdin, out, cfg.Interval)
	case config.ClockUptime:
		return watch[clock.Uptime](ctx, clock.Uptime(0), os.Stdin, out, cfg.Interval)
	case config.ClockMono:
		return watch[clock.Mono](ctx, clock.Mono{}, os.Stdin, out, cfg.Interval)
	default:
		return fmt.Errorf("unknown clock %q", cfg.Clock)
	}
}

// watch runs an interactive stopwatch until q is read, in reaches EOF or
// ctx ends. The final elapsed time is always printed.
func watch[I clock.Instant[I]](ctx context.Context, c clock.Clock[I], in io.Reader, out io.Writer, every time.Duration) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(out, watchHelp)
	sw := stopwatch.NewStarted(c)
	logger.Debugf("Watch started, printing every %s", every)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			show(out, &sw)
			return nil

		case <-ticker.C:
			if sw.IsRunning() {
				show(out, &sw)
			}

		case line, ok := <-lines:
			if !ok {
				show(out, &sw)
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read commands: %w", err)
					}
				default:
				}
				return nil
			}
			if quit := handleLine(out, &sw, line); quit {
				return nil
			}
		}
	}
}

// handleLine applies one interactive command and reports whether to quit.
func handleLine[I clock.Instant[I]](out io.Writer, sw *stopwatch.Stopwatch[I], line string) (quit bool) {
	switch strings.ToLower(line) {
	case "", "p":
		sw.Toggle()
	case "r":
		sw.ResetInPlace()
	case "s":
	case "q":
		quit = true
	default:
		fmt.Fprintf(out, "unknown command %q (%s)\n", line, watchHelp)
		return false
	}
	show(out, sw)
	return quit
}

func show[I clock.Instant[I]](out io.Writer, sw *stopwatch.Stopwatch[I]) {
	state := "running"
	if sw.IsStopped() {
		state = "paused"
	}
	fmt.Fprintf(out, "%s %s\n", formatElapsed(sw.Elapsed()), state)
}
