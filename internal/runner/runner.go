// Package runner sweeps exercises in manifest order, checking completion and
// running the external checker for the completed ones.
package runner

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/nixlings/nixlings/internal/checker"
	"github.com/nixlings/nixlings/internal/exercise"
)

// Detector decides whether an exercise is done.
type Detector interface {
	IsDone(ex exercise.Exercise) (bool, error)
}

// Checker validates a completed exercise.
type Checker interface {
	Check(ctx context.Context, ex exercise.Exercise) (checker.Outcome, error)
}

// Runner manages verification of exercises.
type Runner struct {
	detector Detector
	checker  Checker
	out      io.Writer
	logger   *zap.Logger
	printer  *printer
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where per-exercise lines and the summary are written.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a runner.
func New(detector Detector, checker Checker, opts ...Option) *Runner {
	r := &Runner{
		detector: detector,
		checker:  checker,
		out:      os.Stdout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.printer = newPrinter(r.out)
	return r
}

// Verify checks every exercise in order and prints a summary.
// Per-exercise failures are reported inline and never stop the sweep.
// Cancellation of ctx stops the sweep before the next exercise.
func (r *Runner) Verify(ctx context.Context, list exercise.List) Summary {
	sum := Summary{Total: len(list), Results: make([]Result, 0, len(list))}

	for _, ex := range list {
		if ctx.Err() != nil {
			r.logger.Warn("verification interrupted", zap.Error(ctx.Err()))
			break
		}
		res := r.verifyOne(ctx, ex)
		sum.record(res)
		r.printer.result(res)
	}

	r.printer.summary(sum)
	return sum
}

// RunOne verifies the single exercise called name.
// A *exercise.NotFoundError is returned before any check runs.
func (r *Runner) RunOne(ctx context.Context, list exercise.List, name string) (Result, error) {
	ex, err := list.Find(name)
	if err != nil {
		return Result{}, err
	}

	r.printer.running(*ex)
	res := r.verifyOne(ctx, *ex)
	r.printer.result(res)
	return res, nil
}

func (r *Runner) verifyOne(ctx context.Context, ex exercise.Exercise) Result {
	res := Result{Name: ex.Name, Task: ex.Task}
	log := r.logger.With(zap.String("exercise", ex.Name), zap.String("path", ex.Path))

	done, err := r.detector.IsDone(ex)
	if err != nil {
		log.Warn("completion check failed", zap.Error(err))
		res.Status = StatusIOError
		res.Err = err
		return res
	}
	if !done {
		log.Debug("exercise not done")
		res.Status = StatusNotDone
		return res
	}

	out, err := r.checker.Check(ctx, ex)
	if err != nil {
		log.Warn("checker launch failed", zap.Error(err))
		res.Status = StatusLaunchError
		res.Err = err
		return res
	}

	res.Outcome = &out
	if out.Success {
		res.Status = StatusPassed
	} else {
		res.Status = StatusFailed
		if out.TimedOut {
			res.Err = errors.New("check timed out")
		}
	}
	log.Debug("check finished",
		zap.Bool("success", out.Success),
		zap.Int("exit_code", out.ExitCode),
		zap.Duration("duration", out.Duration))
	return res
}
