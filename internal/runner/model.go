package runner

import (
	"fmt"

	"github.com/nixlings/nixlings/internal/checker"
)

// Status is the per-exercise outcome of a sweep.
type Status string

const (
	StatusNotDone     Status = "not_done"
	StatusIOError     Status = "io_error"
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusLaunchError Status = "launch_error"
)

// Completed reports whether the exercise counted as completed.
func (s Status) Completed() bool {
	return s == StatusPassed || s == StatusFailed || s == StatusLaunchError
}

// Result is what happened to a single exercise.
type Result struct {
	Name    string           `json:"name"`
	Task    string           `json:"task,omitempty"`
	Status  Status           `json:"status"`
	Err     error            `json:"-"`
	Outcome *checker.Outcome `json:"outcome,omitempty"`
}

// Summary aggregates a sweep. Passed <= Completed <= Total always holds.
type Summary struct {
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
	Passed    int      `json:"passed"`
	Results   []Result `json:"results"`
}

// AllPassed reports whether every exercise was completed and passed its check.
func (s Summary) AllPassed() bool {
	return s.Total > 0 && s.Passed == s.Total
}

// Validate checks the counter invariant.
func (s Summary) Validate() error {
	if s.Passed < 0 || s.Passed > s.Completed || s.Completed > s.Total {
		return fmt.Errorf("inconsistent summary: passed=%d completed=%d total=%d", s.Passed, s.Completed, s.Total)
	}
	return nil
}

func (s *Summary) record(res Result) {
	if res.Status.Completed() {
		s.Completed++
	}
	if res.Status == StatusPassed {
		s.Passed++
	}
	s.Results = append(s.Results, res)
}
