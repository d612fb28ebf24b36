package runner

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// ProcessExecutor runs commands as child processes.
type ProcessExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Executor = (*ProcessExecutor)(nil)

// Execute starts the process and waits for it. A non-zero exit is reported
// through exitCode, not err. A process killed because ctx ended reports
// exit code -1 and ctx.Err().
func (p *ProcessExecutor) Execute(ctx context.Context, cmd Command) (int, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdin = p.Stdin
	c.Stdout = p.Stdout
	c.Stderr = p.Stderr

	err := c.Run()
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
