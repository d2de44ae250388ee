package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "quizme", displayVersion(version))
		},
	}
}

// displayVersion normalizes release versions to canonical semver ("1.2" ->
// "v1.2.0") and leaves anything else, such as "(devel)", untouched.
func displayVersion(v string) string {
	if c := semver.Canonical(v); c != "" {
		return c
	}
	if c := semver.Canonical("v" + v); c != "" {
		return c
	}
	return v
}
