package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
)

func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List configured profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch := newOrchestrator(cfg)
			accounts := orch.List()
			if len(accounts) == 0 {
				cfg.Logger.Info("No profiles configured. Run 'mgit add' to create one.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUSERNAME\tEMAIL\tPROVIDER\tHOST ALIAS\tDEFAULT")
			for _, acct := range accounts {
				def := ""
				if acct.IsDefault {
					def = "✓"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					acct.Name, acct.GitUsername, acct.GitEmail, acct.Provider, acct.HostAlias, def)
			}
			return w.Flush()
		},
	}

	return cmd
}
