package cli

import (
	"fmt"

	"github.com/Indemos/Terminal-sub004/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ok: account %s, %d instrument(s), source %s\n",
				cfg.Account.ID, len(cfg.Instruments), cfg.Replay.Source)
			return nil
		},
	}
	return cmd
}
