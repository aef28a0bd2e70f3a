package commands

import (
	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
)

func NewShowKeyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show-key <name>",
		Aliases: []string{"key"},
		Short:   "Print a profile's public SSH key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch := newOrchestrator(cfg)
			pub, fingerprint, err := orch.ShowKey(args[0])
			if err != nil {
				return err
			}
			cfg.Logger.Plain("%s", pub)
			if fingerprint != "" {
				cfg.Logger.Info("Fingerprint: %s", fingerprint)
			}
			return nil
		},
	}

	return cmd
}
