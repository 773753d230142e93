package commands

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exercises in the recommended order with their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, false); err != nil {
				return err
			}

			t := table.New().Headers("Name", "Status", "Path")
			done := 0
			for _, ex := range a.exercises {
				status := "Pending"
				ok, err := a.detector.IsDone(ex)
				switch {
				case err != nil:
					a.logger.Warn("completion check failed", zap.String("exercise", ex.Name), zap.Error(err))
					status = "Unreadable"
				case ok:
					status = "Done"
					done++
				}
				rel, err := filepath.Rel(a.root, ex.Path)
				if err != nil {
					rel = ex.Path
				}
				t.Row(ex.Name, status, rel)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, t.Render())
			_, _ = fmt.Fprintf(out, "Progress: %d of %d exercises completed\n", done, len(a.exercises))
			return nil
		},
	}
}
