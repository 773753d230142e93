package clierr

import (
	"errors"
	"fmt"

	"github.com/nixlings/nixlings/internal/checker"
	"github.com/nixlings/nixlings/internal/exercise"
	"github.com/nixlings/nixlings/internal/projectroot"
)

// Process exit codes.
const (
	ExitOK = 0
	// ExitFailure covers startup failures and unknown exercise names.
	ExitFailure = 1
	// ExitIncomplete is used by `verify --strict` when not every exercise passed.
	ExitIncomplete = 2
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
// It supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	code  int
	msg   string
	cause error
	// terse drops the cause from Error() when msg already says everything.
	terse bool
}

func (e *ExitError) Error() string {
	if e.cause == nil || e.terse {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap creates an ExitError that wraps an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// Newf is a formatted variant.
func Newf(code int, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

func terse(code int, msg string, cause error) error {
	return &ExitError{code: normalize(code), msg: msg, cause: cause, terse: true}
}

// Classify turns domain errors into user-facing ExitErrors.
// Errors that already carry an exit code are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return err
	}

	var (
		me *exercise.ManifestError
		nf *exercise.NotFoundError
		md *checker.MissingDependencyError
	)
	switch {
	case errors.Is(err, projectroot.ErrNotFound),
		errors.As(err, &me) && me.NotFound:
		return terse(ExitFailure, "The program must be run from the nixlings directory\nTry `cd nixlings/`!", err)
	case errors.As(err, &me):
		return terse(ExitFailure, "Failed to read the manifest file: "+me.Error(), err)
	case errors.As(err, &nf), errors.As(err, &md):
		return terse(ExitFailure, err.Error(), err)
	}
	return Wrap(ExitFailure, "nixlings", err)
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
// This keeps main() dumb and avoids duplicating errors.As logic everywhere.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFailure
}

func normalize(code int) int {
	// Exit code 0 means success; errors should never be 0.
	if code <= 0 {
		return ExitFailure
	}
	return code
}
