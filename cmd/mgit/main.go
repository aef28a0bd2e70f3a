package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/cmd/mgit/commands"
	"github.com/PrajsRamteke/mgit/internal/config"
	"github.com/PrajsRamteke/mgit/internal/keyring"
	"github.com/PrajsRamteke/mgit/internal/logging"
	"github.com/PrajsRamteke/mgit/pkg/exec"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Wipe any passphrase enclaves before the process exits.
	defer memguard.Purge()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		memguard.Purge()
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configDir      string
		sshDir         string
		noColor        bool
		debug          bool
		nonInteractive bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "mgit",
		Short: "Manage multiple Git identities on one machine",
		Long: `mgit keeps separate SSH keypairs, SSH host aliases, and Git user
configs per account and switches between them globally or per repository.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.ConfigDir = configDir
			cfg.SSHDir = sshDir
			cfg.Logger = logging.New(os.Stdout, debug, noColor)
			cfg.NonInteractive = nonInteractive
			cfg.Runner = exec.DefaultExecutor()
			cfg.Passphrases = keyring.System()
			return cfg.Resolve()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "mgit state directory (default ~/.mgit)")
	rootCmd.PersistentFlags().StringVar(&sshDir, "ssh-dir", "", "SSH directory (default ~/.ssh)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; fail or skip instead")

	// Add commands
	rootCmd.AddCommand(
		commands.NewAddCommand(cfg),
		commands.NewRemoveCommand(cfg),
		commands.NewSwitchCommand(cfg),
		commands.NewListCommand(cfg),
		commands.NewCurrentCommand(cfg),
		commands.NewCloneCommand(cfg),
		commands.NewTestCommand(cfg),
		commands.NewWorkspaceCommand(cfg),
		commands.NewShowKeyCommand(cfg),
		commands.NewInfoCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
