// SPDX-License-Identifier: AGPL-3.0-or-later

/*
nixlings - small exercises to get you used to reading and writing Nix flakes.

Each exercise lives in its own directory with a flake.nix containing the marker
"# I AM NOT DONE". Remove the marker when you are finished and nixlings will run
`nix flake check` on it.
*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nixlings/nixlings/internal/config"
)

const (
	welcome    = "HI FROM NIXLINGS"
	defaultOut = "Thanks for installing Nixlings"
)

// NewRootCmd constructs the nixlings root Cobra command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	version := os.Getenv("NIXLINGS_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "nixlings",
		Short:         "Nixlings - small exercises for learning Nix flakes",
		Long:          "Nixlings tracks your progress through a series of Nix flake exercises and checks your solutions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "\n%s\n\n", welcome)
			_, _ = fmt.Fprintf(out, "%s\n\n", defaultOut)
			return nil
		},
	}

	defaults := config.Default()
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&a.configPath, "config", config.DefaultFile, "optional config file")
	pf.StringVar(&a.overrides.Manifest, "manifest", defaults.Manifest, "exercise manifest (.toml or .yaml)")
	pf.StringVar(&a.overrides.Marker, "marker", defaults.Marker, "text marking an exercise as not done")
	pf.StringVar(&a.overrides.MarkerFile, "marker-file", defaults.MarkerFile, "file searched for the marker inside an exercise directory")
	pf.StringArrayVar(&a.overrides.Checker, "checker", defaults.Checker, "checker program and arguments, one token per flag; the exercise path is appended")
	pf.DurationVar(&a.overrides.Timeout, "timeout", 0, "per-exercise check timeout (0 disables)")
	pf.DurationVar(&a.overrides.Debounce, "debounce", defaults.Debounce, "quiet period before watch re-verifies")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of nixlings",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "nixlings version %s\n", version)
		},
	})

	cmd.AddCommand(newVerifyCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newDoctorCmd(a))
	cmd.AddCommand(newReportCmd())

	return cmd
}
