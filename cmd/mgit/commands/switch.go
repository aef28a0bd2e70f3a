package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
	"github.com/PrajsRamteke/mgit/internal/profile"
)

func NewSwitchCommand(cfg *config.Config) *cobra.Command {
	var (
		local    bool
		repoPath string
	)

	cmd := &cobra.Command{
		Use:     "switch <name>",
		Aliases: []string{"use"},
		Short:   "Switch the active Git identity",
		Long: `Apply a profile's user.name and user.email.

Global scope (the default) rewrites the machine-wide Git config and makes
the profile the mgit default. Local scope (--local) rewrites only the
target repository's config and must run inside a working tree unless
--repo-path is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := profile.ScopeGlobal
			if local {
				scope = profile.ScopeLocal
			}

			orch := newOrchestrator(cfg)
			if err := orch.Switch(context.Background(), args[0], scope, repoPath); err != nil {
				return err
			}
			cfg.Logger.Success("Switched to profile '%s' (%s)", args[0], scope)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&local, "local", "l", false, "Apply to the current repository only")
	cmd.Flags().StringVarP(&repoPath, "repo-path", "r", ".", "Repository path for --local")

	return cmd
}
