package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/PrajsRamteke/mgit/internal/account"
	"github.com/PrajsRamteke/mgit/internal/config"
	"github.com/PrajsRamteke/mgit/internal/gitcfg"
	"github.com/PrajsRamteke/mgit/internal/profile"
	"github.com/PrajsRamteke/mgit/internal/sshcfg"
)

// newOrchestrator assembles the profile orchestrator from the runtime
// config. Every command goes through this single wiring point.
func newOrchestrator(cfg *config.Config) *profile.Orchestrator {
	store := account.NewStore(cfg.StorePath(), cfg.Logger)
	ssh := sshcfg.NewEngine(cfg.SSHDir, cfg.SSHConfigPath(), cfg.Runner, cfg.Logger)
	git := gitcfg.NewBinder(cfg.Runner, cfg.Logger)
	return profile.New(store, ssh, git, cfg.Passphrases, cfg.Logger)
}

// promptPassphrase reads a passphrase twice without echo. Returns empty
// when stdin is not a terminal or the user just presses enter.
func promptPassphrase() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}

	fmt.Fprint(os.Stderr, "SSH key passphrase (empty for none): ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	if len(first) == 0 {
		return nil, nil
	}

	fmt.Fprint(os.Stderr, "Repeat passphrase: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	if string(first) != string(second) {
		return nil, fmt.Errorf("passphrases do not match")
	}
	return first, nil
}

// confirm asks a yes/no question on stderr and returns the answer.
// Defaults to no on empty input or read failure.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
