package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
)

func NewCurrentCommand(cfg *config.Config) *cobra.Command {
	var repoPath string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the effective Git identity and the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch := newOrchestrator(cfg)
			orch.Current(context.Background(), repoPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&repoPath, "repo-path", "r", ".", "Repository to inspect for a local identity")

	return cmd
}
