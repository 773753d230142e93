package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nixlings/nixlings/internal/report"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <file>",
		Short: "Show a report written by `verify --report`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := report.Read(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Run %s at %s\n", r.RunID, r.StartedAt.Format("2006-01-02 15:04:05 MST"))
			for _, e := range r.Exercises {
				line := fmt.Sprintf("  %-20s %s", e.Name, e.Status)
				if e.Error != "" {
					line += " (" + e.Error + ")"
				}
				_, _ = fmt.Fprintln(out, line)
			}
			_, _ = fmt.Fprintf(out, "Progress: %d of %d exercises completed\n", r.Completed, r.Total)
			_, _ = fmt.Fprintf(out, "Checks: %d of %d checks passed\n", r.Passed, r.Completed)
			return nil
		},
	}
}
