// Package subprocess runs the external tools the converter depends on.
package subprocess

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Executor runs external commands. Both tool adapters take this
// interface so tests can stub the binaries away.
type Executor interface {
	Run(ctx context.Context, cmd string, args []string) error
	RunWithOutput(ctx context.Context, cmd string, args []string) ([]byte, error)
	RunWithPipes(ctx context.Context, cmd string, args []string, stdout, stderr io.Writer) error
}

// Runner implements Executor using os/exec.
type Runner struct {
	logger *slog.Logger
	dryRun bool
}

// NewRunner creates a command runner. With dryRun set, commands are
// printed instead of executed.
func NewRunner(logger *slog.Logger, dryRun bool) *Runner {
	return &Runner{
		logger: logger,
		dryRun: dryRun,
	}
}

// Run executes a command with inherited stdout/stderr and waits for
// completion.
func (r *Runner) Run(ctx context.Context, cmd string, args []string) error {
	r.logger.Debug("executing command",
		"cmd", cmd,
		"args", args,
	)

	if r.dryRun {
		fmt.Printf("[dry-run] %s %s\n", cmd, strings.Join(args, " "))
		return nil
	}

	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	return c.Run()
}

// RunWithOutput executes a command and returns its stdout.
func (r *Runner) RunWithOutput(ctx context.Context, cmd string, args []string) ([]byte, error) {
	r.logger.Debug("executing command with output capture",
		"cmd", cmd,
		"args", args,
	)

	if r.dryRun {
		fmt.Printf("[dry-run] %s %s\n", cmd, strings.Join(args, " "))
		return nil, nil
	}

	c := exec.CommandContext(ctx, cmd, args...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, stderr.String())
	}

	return stdout.Bytes(), nil
}

// RunWithPipes executes a command with custom stdout/stderr writers.
func (r *Runner) RunWithPipes(ctx context.Context, cmd string, args []string, stdout, stderr io.Writer) error {
	r.logger.Debug("executing command with pipes",
		"cmd", cmd,
		"args", args,
	)

	if r.dryRun {
		fmt.Fprintf(stdout, "[dry-run] %s %s\n", cmd, strings.Join(args, " "))
		return nil
	}

	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdout = stdout
	c.Stderr = stderr

	return c.Run()
}
