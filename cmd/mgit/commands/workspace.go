package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
)

func NewWorkspaceCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace <name> <directory>",
		Short: "Bind a directory tree to a profile",
		Long: `Write a Git config fragment under the directory and register a global
conditional include for it, so every repository beneath the directory
uses the profile's identity automatically.

Example:
  mgit workspace work ~/src/acme`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch := newOrchestrator(cfg)
			if err := orch.Workspace(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			cfg.Logger.Success("Repositories under %s now use profile '%s'", args[1], args[0])
			return nil
		},
	}

	return cmd
}
