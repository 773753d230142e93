package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nixlings/nixlings/internal/checker"
	"github.com/nixlings/nixlings/internal/exercise"
)

// outputTailLines bounds how much checker output is echoed for a failing exercise.
const outputTailLines = 20

type printer struct {
	w    io.Writer
	ok   lipgloss.Style
	bad  lipgloss.Style
	warn lipgloss.Style
	dim  lipgloss.Style
	bold lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	// The renderer inspects w, so output to a pipe or buffer stays plain text.
	re := lipgloss.NewRenderer(w)
	return &printer{
		w:    w,
		ok:   re.NewStyle().Foreground(lipgloss.Color("2")),
		bad:  re.NewStyle().Foreground(lipgloss.Color("1")),
		warn: re.NewStyle().Foreground(lipgloss.Color("3")),
		dim:  re.NewStyle().Faint(true),
		bold: re.NewStyle().Bold(true),
	}
}

func (p *printer) running(ex exercise.Exercise) {
	_, _ = fmt.Fprintf(p.w, "%s\n", p.bold.Render("Running exercise: "+ex.Name))
	if ex.Task != "" {
		_, _ = fmt.Fprintf(p.w, "%s\n", p.dim.Render(ex.Task))
	}
	_, _ = fmt.Fprintln(p.w)
}

func (p *printer) result(res Result) {
	_, _ = fmt.Fprintf(p.w, "Checking exercise: %s\n", res.Name)

	switch res.Status {
	case StatusIOError:
		_, _ = fmt.Fprintf(p.w, "%s\n", p.warn.Render(fmt.Sprintf("⚠ %s could not be read: %v", res.Name, res.Err)))
	case StatusNotDone:
		_, _ = fmt.Fprintf(p.w, "%s\n", p.bad.Render(fmt.Sprintf("❌ %s is not yet completed.", res.Name)))
	default:
		_, _ = fmt.Fprintf(p.w, "%s\n", p.ok.Render(fmt.Sprintf("✅ %s is completed!", res.Name)))
		p.check(res)
	}
	_, _ = fmt.Fprintln(p.w)
}

func (p *printer) check(res Result) {
	switch res.Status {
	case StatusPassed:
		_, _ = fmt.Fprintf(p.w, "%s\n", p.ok.Render(fmt.Sprintf("✅ %s passed the checks!", res.Name)))
	case StatusLaunchError:
		_, _ = fmt.Fprintf(p.w, "%s\n", p.warn.Render(fmt.Sprintf("⚠ checks for %s could not be started: %v", res.Name, res.Err)))
	case StatusFailed:
		msg := fmt.Sprintf("❌ %s did not pass the checks.", res.Name)
		if res.Outcome != nil && res.Outcome.TimedOut {
			msg = fmt.Sprintf("❌ %s did not pass the checks (timed out).", res.Name)
		}
		_, _ = fmt.Fprintf(p.w, "%s\n", p.bad.Render(msg))
		if res.Outcome != nil {
			p.output(res.Outcome)
		}
	}
}

func (p *printer) output(out *checker.Outcome) {
	text := strings.TrimSpace(out.Stderr)
	if text == "" {
		text = strings.TrimSpace(out.Stdout)
	}
	if text == "" {
		return
	}
	for _, line := range strings.Split(checker.Tail(text, outputTailLines), "\n") {
		_, _ = fmt.Fprintf(p.w, "    %s\n", p.dim.Render(line))
	}
}

func (p *printer) summary(s Summary) {
	_, _ = fmt.Fprintf(p.w, "%s\n", p.bold.Render(fmt.Sprintf("Progress: %d of %d exercises completed", s.Completed, s.Total)))
	_, _ = fmt.Fprintf(p.w, "%s\n", p.bold.Render(fmt.Sprintf("Checks: %d of %d checks passed", s.Passed, s.Completed)))
}
