// Package sshcfg manages SSH material for mgit profiles: key pairs on disk,
// marker-delimited blocks in the SSH client config, agent registration, and
// connection probes. All process invocations go through the injected
// CommandExecutor.
package sshcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
	"github.com/PrajsRamteke/mgit/internal/logging"
	"github.com/PrajsRamteke/mgit/pkg/exec"
)

// Engine performs all SSH-side operations for one machine user.
type Engine struct {
	sshDir     string
	configPath string
	runner     exec.CommandExecutor
	logger     *logging.Logger
}

// NewEngine creates an engine over the given SSH directory and client
// config path.
func NewEngine(sshDir, configPath string, runner exec.CommandExecutor, logger *logging.Logger) *Engine {
	return &Engine{
		sshDir:     sshDir,
		configPath: configPath,
		runner:     runner,
		logger:     logger,
	}
}

// AddConfigEntry writes (or replaces in place) the managed config block for
// the account and returns the host alias. The account's key must exist.
func (e *Engine) AddConfigEntry(accountName, provider, customHost string) (string, error) {
	host, err := HostForProvider(provider, customHost)
	if err != nil {
		return "", err
	}
	alias := HostAlias(host, accountName)

	keyPath, ok := e.findKey(accountName)
	if !ok {
		return "", mgiterrors.NotFoundError{
			Kind:       "SSH key",
			Name:       accountName,
			Suggestion: "Generate one first with 'mgit add'",
		}
	}

	block := buildBlock(alias, host, keyPath)

	content, err := e.readConfig()
	if err != nil {
		return "", err
	}

	var updated string
	if hasBlock(content, alias) {
		updated, err = replaceBlock(content, alias, block, e.configPath)
		if err != nil {
			return "", err
		}
	} else {
		updated = appendBlock(content, block)
	}

	if err := e.writeConfig(updated); err != nil {
		return "", err
	}
	e.logger.Success("SSH config entry added for host alias: %s", alias)
	return alias, nil
}

// RemoveConfigEntry deletes the managed block for the alias. A missing
// block is a warning, not an error.
func (e *Engine) RemoveConfigEntry(hostAlias string) error {
	content, err := e.readConfig()
	if err != nil {
		return err
	}

	updated, found, err := dropBlock(content, hostAlias, e.configPath)
	if err != nil {
		return err
	}
	if !found {
		e.logger.Warn("no SSH config entry found for '%s'", hostAlias)
		return nil
	}

	if err := e.writeConfig(updated); err != nil {
		return err
	}
	e.logger.Success("SSH config entry removed for: %s", hostAlias)
	return nil
}

// TestConnection issues an authentication-only SSH probe against the alias.
// Hosting providers commonly reply with a non-zero exit on a successful
// probe, so the combined output is also checked for the success phrase.
func (e *Engine) TestConnection(ctx context.Context, hostAlias string) (bool, error) {
	stdout, stderr, err := e.runner.Execute(ctx, "ssh", "-T", "git@"+hostAlias)
	if err != nil && exec.IsNotInstalled(err) {
		return false, mgiterrors.WrapToolNotFound("ssh", err)
	}

	combined := strings.ToLower(string(stdout) + string(stderr))
	ok := err == nil || strings.Contains(combined, "successfully authenticated")
	if ok {
		e.logger.Success("SSH connection test passed for %s", hostAlias)
	} else {
		e.logger.Error("SSH connection test failed for %s", hostAlias)
	}
	return ok, nil
}

func (e *Engine) readConfig() (string, error) {
	data, err := os.ReadFile(e.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading SSH config: %w", err)
	}
	return string(data), nil
}

func (e *Engine) writeConfig(content string) error {
	if err := os.MkdirAll(filepath.Dir(e.configPath), 0o700); err != nil {
		return fmt.Errorf("creating SSH directory: %w", err)
	}
	if err := os.WriteFile(e.configPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing SSH config: %w", err)
	}
	// WriteFile only applies the mode on creation.
	if err := os.Chmod(e.configPath, 0o600); err != nil {
		return fmt.Errorf("setting SSH config permissions: %w", err)
	}
	return nil
}
