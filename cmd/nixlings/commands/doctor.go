package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nixlings/nixlings/cmd/nixlings/internal/clierr"
	"github.com/nixlings/nixlings/internal/scanner"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the manifest against the exercise tree and the checker installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, false); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			problems := 0

			if err := a.invoker.Preflight(); err != nil {
				problems++
				_, _ = fmt.Fprintf(out, "checker: %v\n", err)
			} else {
				_, _ = fmt.Fprintf(out, "checker: %s found\n", a.invoker.Program())
			}

			_, _ = fmt.Fprintf(out, "marker: %q in %s\n", a.detector.Marker(), a.cfg.MarkerFile)

			discovered, err := scanner.Discover(a.root, a.cfg.MarkerFile, scanner.FilterOptions{
				ExcludeDirs: scanner.DefaultExcludeDirs(),
			})
			if err != nil {
				return err
			}
			drift := scanner.Compare(a.root, a.exercises, discovered)
			for _, name := range drift.Missing {
				problems++
				_, _ = fmt.Fprintf(out, "missing: exercise %s points at a path that does not exist\n", name)
			}
			for _, dir := range drift.Orphans {
				problems++
				_, _ = fmt.Fprintf(out, "orphan: %s has a %s but is not in the manifest\n", dir, a.cfg.MarkerFile)
			}

			if problems > 0 {
				return clierr.Newf(clierr.ExitFailure, "doctor found %d problem(s)", problems)
			}
			_, _ = fmt.Fprintf(out, "manifest: %d exercises, all present\n", len(a.exercises))
			return nil
		},
	}
}
