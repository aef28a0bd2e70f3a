package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
)

func NewCloneCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone <name> <url> [destination]",
		Short: "Clone a repository through a profile's host alias",
		Long: `Rewrite the SSH URL to the profile's host alias, clone it, and apply
the profile's identity to the new repository's local config.

Example:
  mgit clone work git@github.com:acme/api.git`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination := ""
			if len(args) == 3 {
				destination = args[2]
			}

			orch := newOrchestrator(cfg)
			return orch.Clone(context.Background(), args[0], args[1], destination)
		},
	}

	return cmd
}
