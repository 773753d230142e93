// Package checker runs the external validation command for an exercise.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/nixlings/nixlings/internal/exercise"
)

// DefaultCommand validates a flake. The exercise path is appended as the last argument.
var DefaultCommand = []string{"nix", "flake", "check"}

// Outcome is the result of a checker process that was started.
// A failed check is a normal Outcome with Success=false, never an error.
type Outcome struct {
	Exercise string        `json:"exercise"`
	Command  []string      `json:"command"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exit_code"`
	Success  bool          `json:"success"`
	TimedOut bool          `json:"timed_out,omitempty"`
	Duration time.Duration `json:"duration"`
}

// LaunchError reports a checker process that could not be started at all.
type LaunchError struct {
	Exercise string
	Program  string
	Err      error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s for exercise %s: %v", e.Program, e.Exercise, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// MissingDependencyError is returned by Preflight when the checker program is not on PATH.
type MissingDependencyError struct {
	Program string
	Err     error
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("We cannot find `%[1]s`.\nTry running `%[1]s --version` to diagnose your problem.\nFor instructions on how to install Nix, check the README.", e.Program)
}

func (e *MissingDependencyError) Unwrap() error { return e.Err }

const waitDelay = 2 * time.Second

// Invoker runs a fixed command with the exercise path appended.
type Invoker struct {
	command []string
	timeout time.Duration
	env     []string
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithTimeout bounds each check. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(i *Invoker) { i.timeout = d }
}

// WithEnv appends KEY=VALUE entries to the inherited environment.
func WithEnv(env ...string) Option {
	return func(i *Invoker) { i.env = append(i.env, env...) }
}

// New creates an Invoker. An empty command selects DefaultCommand.
func New(command []string, opts ...Option) *Invoker {
	if len(command) == 0 {
		command = DefaultCommand
	}
	i := &Invoker{command: append([]string(nil), command...)}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Program returns the executable the invoker launches.
func (i *Invoker) Program() string { return i.command[0] }

// Argv returns the full argument vector used for ex.
func (i *Invoker) Argv(ex exercise.Exercise) []string {
	argv := make([]string, 0, len(i.command)+1)
	argv = append(argv, i.command...)
	return append(argv, ex.Path)
}

// Preflight verifies the checker program can be found.
func (i *Invoker) Preflight() error {
	if _, err := exec.LookPath(i.Program()); err != nil {
		return &MissingDependencyError{Program: i.Program(), Err: err}
	}
	return nil
}

// Check runs the checker for ex and blocks until it exits.
func (i *Invoker) Check(ctx context.Context, ex exercise.Exercise) (Outcome, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	argv := i.Argv(ex)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// Grandchildren may keep the output pipes open after a kill.
	cmd.WaitDelay = waitDelay
	if len(i.env) > 0 {
		cmd.Env = append(cmd.Environ(), i.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := Outcome{
		Exercise: ex.Name,
		Command:  argv,
		Stdout:   strings.ToValidUTF8(stdout.String(), "�"),
		Stderr:   strings.ToValidUTF8(stderr.String(), "�"),
		Duration: time.Since(start),
	}

	if err == nil {
		out.Success = true
		return out, nil
	}

	// The process ran. Exit status alone decides the outcome, even when Wait
	// also reported pipe trouble (exec.ErrWaitDelay from a lingering child).
	if ps := cmd.ProcessState; ps != nil {
		out.ExitCode = ps.ExitCode()
		out.Success = ps.Success()
		out.TimedOut = !out.Success && errors.Is(ctx.Err(), context.DeadlineExceeded)
		return out, nil
	}

	// Never started because the run was cancelled or timed out first.
	if ctx.Err() != nil {
		out.ExitCode = -1
		out.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
		return out, nil
	}

	return out, &LaunchError{Exercise: ex.Name, Program: argv[0], Err: err}
}

// Tail returns the last n lines of s, marking truncation.
func Tail(s string, n int) string {
	s = strings.TrimRight(s, "\n")
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return "...(truncated)...\n" + strings.Join(lines[len(lines)-n:], "\n")
}
