package commands

import (
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <name>",
		Short: "Run/Test a single exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, true); err != nil {
				return err
			}
			_, err := a.newRunner(cmd).RunOne(cmd.Context(), a.exercises, args[0])
			return err
		},
	}
}
