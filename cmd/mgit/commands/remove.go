package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
)

func NewRemoveCommand(cfg *config.Config) *cobra.Command {
	var (
		keepKeys bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a profile and its SSH config block",
		Long: `Delete a profile: its SSH config block, its key files (unless
--keep-keys), any passphrase stored in the OS keyring, and the store record.

The global Git config and any workspace fragments are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !yes && !cfg.NonInteractive {
				if !confirm(fmt.Sprintf("Remove profile '%s' and its SSH configuration?", name)) {
					cfg.Logger.Info("Aborted")
					return nil
				}
			}

			orch := newOrchestrator(cfg)
			return orch.Remove(context.Background(), name, !keepKeys)
		},
	}

	cmd.Flags().BoolVar(&keepKeys, "keep-keys", false, "Keep the SSH key files on disk")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
