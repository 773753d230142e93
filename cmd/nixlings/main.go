// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/nixlings/nixlings/cmd/nixlings/commands"
	"github.com/nixlings/nixlings/cmd/nixlings/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		err = clierr.Classify(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
