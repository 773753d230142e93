package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nixlings/nixlings/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rerun `verify` when files were edited",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, true); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			r := a.newRunner(cmd)
			r.Verify(ctx, a.exercises)

			paths := make([]string, 0, len(a.exercises))
			for _, ex := range a.exercises {
				paths = append(paths, ex.Path)
			}

			w, err := watch.New(paths, func(ctx context.Context, path string) {
				a.logger.Debug("re-verifying", zap.String("changed", path))
				_, _ = fmt.Fprintf(out, "\nChange detected in %s, verifying again...\n\n", path)
				r.Verify(ctx, a.exercises)
			}, watch.WithDebounce(a.cfg.Debounce), watch.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				w.Stop()
				return err
			}
			defer w.Stop()

			_, _ = fmt.Fprintln(out, "Watching for changes. Press Ctrl+C to exit.")
			<-ctx.Done()
			return nil
		},
	}
}
