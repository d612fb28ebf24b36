// Package runner times repeated executions of a command.
//
// Each run is measured by its own stopwatch, started through a guard so the
// stopwatch is stopped however the run ends. The per-run times are summed
// into a total stopwatch.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ulahello/libsw/clock"
	"github.com/ulahello/libsw/internal/logger"
	"github.com/ulahello/libsw/stopwatch"
)

// Command is a program and its arguments.
type Command struct {
	Name string
	Args []string
}

// String joins the program and its arguments with spaces.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Executor runs one command to completion and reports its exit code. err is
// only set when the command could not be run at all.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (exitCode int, err error)
}

// Recorder receives the outcome of every run.
type Recorder interface {
	ObserveRun(command string, exitCode int, elapsed time.Duration)
}

// Result is the outcome of a single run.
type Result struct {
	Run      int
	ID       string
	ExitCode int
	Elapsed  time.Duration
	Err      error
}

// Failed reports whether the run failed to start or exited non-zero.
func (r Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

// Summary collects the results of all runs.
type Summary struct {
	Command Command
	Results []Result
	Total   time.Duration
}

// Failures returns the number of failed runs.
func (s Summary) Failures() int {
	n := 0
	for _, r := range s.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// Mean returns the average run time, or zero when nothing ran.
func (s Summary) Mean() time.Duration {
	if len(s.Results) == 0 {
		return 0
	}
	return s.Total / time.Duration(len(s.Results))
}

// Options control a Run.
type Options struct {
	// Repeat is the number of runs (default: 1)
	Repeat int

	// StopOnFailure ends the sequence after the first failed run
	StopOnFailure bool
}

// Runner times commands against a clock of instant type I.
type Runner[I clock.Instant[I]] struct {
	clock    clock.Clock[I]
	exec     Executor
	recorder Recorder
	newID    func() string
}

// New creates a Runner. recorder may be nil.
func New[I clock.Instant[I]](c clock.Clock[I], exec Executor, recorder Recorder) *Runner[I] {
	return &Runner[I]{
		clock:    c,
		exec:     exec,
		recorder: recorder,
		newID:    uuid.NewString,
	}
}

// Run executes cmd opts.Repeat times in sequence. It returns the results
// gathered so far along with ctx.Err() if the context ends between runs.
func (r *Runner[I]) Run(ctx context.Context, cmd Command, opts Options) (Summary, error) {
	if cmd.Name == "" {
		return Summary{}, errors.New("no command given")
	}
	repeat := opts.Repeat
	if repeat < 1 {
		repeat = 1
	}

	summary := Summary{Command: cmd, Results: make([]Result, 0, repeat)}
	total := stopwatch.New(r.clock)

	for i := 1; i <= repeat; i++ {
		if err := ctx.Err(); err != nil {
			summary.Total = total.Elapsed()
			return summary, err
		}

		res, err := r.runOnce(ctx, cmd, i)
		if err != nil {
			summary.Total = total.Elapsed()
			return summary, err
		}
		total = total.SaturatingAdd(res.Elapsed)
		summary.Results = append(summary.Results, res)

		if res.Failed() && opts.StopOnFailure {
			logger.Warnf("Run %d of %q failed, stopping", i, cmd.String())
			break
		}
	}

	summary.Total = total.Elapsed()
	return summary, nil
}

func (r *Runner[I]) runOnce(ctx context.Context, cmd Command, n int) (Result, error) {
	res := Result{Run: n, ID: r.newID()}

	sw := stopwatch.New(r.clock)
	guard, err := sw.Guard()
	if err != nil {
		return res, fmt.Errorf("start run %d: %w", n, err)
	}
	logger.Debugf("Run %d (%s) starting: %s", n, res.ID, cmd.String())

	code, execErr := r.exec.Execute(ctx, cmd)
	guard.Release()

	res.ExitCode = code
	res.Err = execErr
	res.Elapsed = sw.Elapsed()

	if execErr != nil {
		logger.Errorf("Run %d (%s) could not execute: %v", n, res.ID, execErr)
	} else {
		logger.Infof("Run %d (%s) exited %d after %s", n, res.ID, code, res.Elapsed)
	}
	if r.recorder != nil {
		r.recorder.ObserveRun(cmd.Name, code, res.Elapsed)
	}
	return res, nil
}
