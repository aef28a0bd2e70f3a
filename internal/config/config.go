// Package config holds the runtime configuration handed to every mgit
// command: resolved file paths, the output logger, and interaction flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PrajsRamteke/mgit/internal/keyring"
	"github.com/PrajsRamteke/mgit/internal/logging"
	"github.com/PrajsRamteke/mgit/pkg/exec"
)

// Config is populated once from global CLI flags and passed to each command
// constructor.
type Config struct {
	// ConfigDir is the mgit state directory, by default ~/.mgit.
	ConfigDir string
	// SSHDir is the SSH directory, by default ~/.ssh.
	SSHDir string

	Logger         *logging.Logger
	NonInteractive bool

	// Runner executes external commands. Tests substitute a mock.
	Runner exec.CommandExecutor
	// Passphrases stores key passphrases, normally in the OS keyring.
	Passphrases keyring.PassphraseStore
}

// Resolve expands empty or ~-prefixed paths against the user's home
// directory. It must be called before any path accessor.
func (c *Config) Resolve() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}
	if c.ConfigDir == "" {
		c.ConfigDir = filepath.Join(home, ".mgit")
	} else {
		c.ConfigDir = expandHome(c.ConfigDir, home)
	}
	if c.SSHDir == "" {
		c.SSHDir = filepath.Join(home, ".ssh")
	} else {
		c.SSHDir = expandHome(c.SSHDir, home)
	}
	return nil
}

// StorePath returns the account store document path.
func (c *Config) StorePath() string {
	return filepath.Join(c.ConfigDir, "config.yaml")
}

// SSHConfigPath returns the SSH client configuration path.
func (c *Config) SSHConfigPath() string {
	return filepath.Join(c.SSHDir, "config")
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}
