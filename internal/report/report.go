// Package report writes a machine-readable summary of a verification sweep.
// Reports are write-only artifacts for CI and editors; verification never reads them back.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nixlings/nixlings/internal/runner"
)

// Entry is the report line for one exercise.
type Entry struct {
	Name     string        `json:"name"`
	Status   runner.Status `json:"status"`
	ExitCode int           `json:"exit_code,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Report matches the JSON document written by `verify --report`.
type Report struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Passed    int       `json:"passed"`
	Exercises []Entry   `json:"exercises"`
}

// New builds a report from a finished sweep.
func New(sum runner.Summary, startedAt time.Time) Report {
	r := Report{
		RunID:     uuid.NewString(),
		StartedAt: startedAt.UTC(),
		Total:     sum.Total,
		Completed: sum.Completed,
		Passed:    sum.Passed,
		Exercises: make([]Entry, 0, len(sum.Results)),
	}
	for _, res := range sum.Results {
		e := Entry{Name: res.Name, Status: res.Status}
		if res.Outcome != nil {
			e.ExitCode = res.Outcome.ExitCode
		}
		if res.Err != nil {
			e.Error = res.Err.Error()
		}
		r.Exercises = append(r.Exercises, e)
	}
	return r
}

// Write saves the report as indented JSON, creating parent directories.
func Write(path string, r Report) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Read loads a report written by Write.
func Read(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r Report
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &r, nil
}
