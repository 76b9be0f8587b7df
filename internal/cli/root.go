// Package cli implements the hull command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the hull CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hull",
		Short: "hull - McCormick relaxation engine",
		Long:  "Deterministic convex/concave relaxation bounds for factorable expressions over interval boxes.",
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewVersionCommand())
	cmd.AddCommand(NewEvalCommand(opts))

	return cmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hull %s\n", version)
		},
	}
}
