// Package cli wires the terminal's commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "terminal",
		Short:         "Trading terminal with account state engine and historical replay",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newReplayCmd(),
		newValidateCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("terminal (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
