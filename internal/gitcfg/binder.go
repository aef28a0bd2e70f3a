// Package gitcfg applies mgit profiles to Git configuration: global and
// per-repository identity, directory-scoped conditional includes, URL
// rewrites, and alias-aware cloning. Every git invocation goes through the
// injected CommandExecutor.
package gitcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PrajsRamteke/mgit/internal/account"
	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
	"github.com/PrajsRamteke/mgit/internal/logging"
	"github.com/PrajsRamteke/mgit/internal/sshcfg"
	"github.com/PrajsRamteke/mgit/pkg/exec"
)

// Binder reads and writes Git configuration on behalf of a profile.
type Binder struct {
	runner exec.CommandExecutor
	logger *logging.Logger
}

// NewBinder creates a binder using the given process runner.
func NewBinder(runner exec.CommandExecutor, logger *logging.Logger) *Binder {
	return &Binder{runner: runner, logger: logger}
}

// ApplyGlobal sets the account's identity in the global Git config,
// including signing configuration when the account carries a signing key.
func (b *Binder) ApplyGlobal(ctx context.Context, acct *account.Account) error {
	pairs := identityPairs(acct)
	for _, kv := range pairs {
		if err := b.git(ctx, "", "config", "--global", kv[0], kv[1]); err != nil {
			return err
		}
	}
	b.logger.Success("Global Git config set to: %s <%s>", acct.GitUsername, acct.GitEmail)
	return nil
}

// ApplyLocal sets the account's identity in a repository's local config.
// The target defaults to the current directory and must be inside a Git
// working tree.
func (b *Binder) ApplyLocal(ctx context.Context, acct *account.Account, repoPath string) error {
	dir := repoPath
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine current directory: %w", err)
		}
		dir = cwd
	}
	if !b.IsGitRepo(ctx, dir) {
		return mgiterrors.RepositoryStateError{Path: dir}
	}

	for _, kv := range identityPairs(acct) {
		if err := b.git(ctx, dir, "config", "--local", kv[0], kv[1]); err != nil {
			return err
		}
	}
	b.logger.Success("Local Git config for '%s' set to: %s <%s>", dir, acct.GitUsername, acct.GitEmail)
	return nil
}

// ConditionalInclude writes a .gitconfig fragment under directory and
// registers a global includeIf rule so every repository beneath it picks up
// the account's identity and SSH key. The fragment is overwritten on repeat
// calls; git config deduplicates the rule by key.
func (b *Binder) ConditionalInclude(ctx context.Context, directory string, acct *account.Account) error {
	dir, err := filepath.Abs(directory)
	if err != nil {
		return fmt.Errorf("resolving workspace directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating workspace directory: %w", err)
	}

	fragment := filepath.Join(dir, ".gitconfig")
	if err := os.WriteFile(fragment, []byte(fragmentContent(acct)), 0o644); err != nil {
		return fmt.Errorf("writing directory gitconfig: %w", err)
	}
	b.logger.Success("Created directory gitconfig: %s", fragment)

	// Git requires the trailing separator on gitdir patterns.
	pattern := dir + "/"
	key := fmt.Sprintf("includeIf.gitdir:%s.path", pattern)
	if err := b.git(ctx, "", "config", "--global", key, fragment); err != nil {
		return err
	}
	b.logger.Success("Conditional include added: repos under '%s' → %s <%s>", dir, acct.GitUsername, acct.GitEmail)
	return nil
}

// URLRewrite registers a global insteadOf rule mapping the provider's
// canonical SSH host to the account's alias, so existing remotes route
// through the right identity. An unresolvable host is reported, not raised.
func (b *Binder) URLRewrite(ctx context.Context, acct *account.Account) error {
	host, err := sshcfg.HostForProvider(string(acct.Provider), acct.CustomHost)
	if err != nil {
		b.logger.Error("cannot determine host for URL rewrite: %v", err)
		return nil
	}
	key := fmt.Sprintf("url.git@%s:.insteadOf", acct.HostAlias)
	if err := b.git(ctx, "", "config", "--global", key, "git@"+host+":"); err != nil {
		return err
	}
	b.logger.Success("URL rewrite: git@%s: → git@%s:", host, acct.HostAlias)
	return nil
}

// CloneWithAccount clones url with the account's host alias substituted for
// the provider's real host, then applies the account's local identity
// inside the fresh clone.
func (b *Binder) CloneWithAccount(ctx context.Context, acct *account.Account, url, destination string) error {
	host, err := sshcfg.HostForProvider(string(acct.Provider), acct.CustomHost)
	if err != nil {
		return err
	}
	rewritten := strings.Replace(url, "git@"+host+":", "git@"+acct.HostAlias+":", 1)

	args := []string{"clone", rewritten}
	if destination != "" {
		args = append(args, destination)
	}
	b.logger.Info("Cloning with profile '%s': %s", acct.Name, rewritten)
	if err := b.git(ctx, "", args...); err != nil {
		return err
	}

	repoDir := destination
	if repoDir == "" {
		segments := strings.Split(rewritten, "/")
		repoDir = strings.TrimSuffix(segments[len(segments)-1], ".git")
	}
	return b.ApplyLocal(ctx, acct, repoDir)
}

// ShowCurrentConfig prints the effective global identity, and the local one
// when repoPath (or the current directory) is inside a repository.
func (b *Binder) ShowCurrentConfig(ctx context.Context, repoPath string) {
	dir := repoPath
	if dir == "" {
		dir, _ = os.Getwd()
	}

	b.logger.Plain("Global Git config:")
	for _, key := range []string{"user.name", "user.email"} {
		b.logger.Plain("  %s: %s", key, b.readConfig(ctx, "", "--global", key))
	}

	if b.IsGitRepo(ctx, dir) {
		b.logger.Plain("Local Git config (%s):", dir)
		for _, key := range []string{"user.name", "user.email"} {
			b.logger.Plain("  %s: %s", key, b.readConfig(ctx, dir, "--local", key))
		}
	} else {
		b.logger.Plain("('%s' is not a Git repository)", dir)
	}
}

// IsGitRepo reports whether path is inside a Git working tree.
func (b *Binder) IsGitRepo(ctx context.Context, path string) bool {
	_, _, err := b.runner.ExecuteDir(ctx, path, "git", "rev-parse", "--is-inside-work-tree")
	return err == nil
}

func identityPairs(acct *account.Account) [][2]string {
	pairs := [][2]string{
		{"user.name", acct.GitUsername},
		{"user.email", acct.GitEmail},
	}
	if acct.SigningKey != "" {
		pairs = append(pairs,
			[2]string{"user.signingkey", acct.SigningKey},
			[2]string{"commit.gpgsign", "true"},
		)
	}
	return pairs
}

func fragmentContent(acct *account.Account) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[user]\n    name = %s\n    email = %s\n", acct.GitUsername, acct.GitEmail)
	if acct.SigningKey != "" {
		fmt.Fprintf(&sb, "    signingkey = %s\n", acct.SigningKey)
		sb.WriteString("[commit]\n    gpgsign = true\n")
	}
	fmt.Fprintf(&sb, "[core]\n    sshCommand = ssh -i %s -o IdentitiesOnly=yes\n", acct.SSHKeyPath)
	return sb.String()
}

func (b *Binder) readConfig(ctx context.Context, dir string, scope, key string) string {
	stdout, _, err := b.runner.ExecuteDir(ctx, dir, "git", "config", scope, key)
	if err != nil {
		return "(not set)"
	}
	return strings.TrimSpace(string(stdout))
}

func (b *Binder) git(ctx context.Context, dir string, args ...string) error {
	_, stderr, err := b.runner.ExecuteDir(ctx, dir, "git", args...)
	if err != nil {
		if exec.IsNotInstalled(err) {
			return mgiterrors.WrapToolNotFound("git", err)
		}
		return mgiterrors.ExternalToolError{
			Tool:     "git",
			Args:     args,
			ExitCode: exec.ExitCode(err),
			Stderr:   string(stderr),
			Err:      err,
		}
	}
	return nil
}
