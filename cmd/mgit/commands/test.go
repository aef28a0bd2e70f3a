package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
)

func NewTestCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <name>",
		Short: "Test SSH authentication for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch := newOrchestrator(cfg)
			ok, err := orch.TestConnection(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("SSH authentication failed for profile '%s'", args[0])
			}
			cfg.Logger.Success("SSH authentication succeeded for profile '%s'", args[0])
			return nil
		},
	}

	return cmd
}
