// Package profile composes the account store, the SSH config engine, and
// the Git identity binder into the user-facing profile workflows. This is
// the only package the CLI commands invoke directly.
//
// Multi-step workflows run strictly in order with no compensating rollback:
// when a later step fails, the work of earlier steps stays in place. The
// failure is surfaced so the user can re-run or clean up.
package profile

import (
	"context"
	"errors"

	"github.com/PrajsRamteke/mgit/internal/account"
	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
	"github.com/PrajsRamteke/mgit/internal/gitcfg"
	"github.com/PrajsRamteke/mgit/internal/keyring"
	"github.com/PrajsRamteke/mgit/internal/logging"
	"github.com/PrajsRamteke/mgit/internal/secure"
	"github.com/PrajsRamteke/mgit/internal/sshcfg"
)

// Scope selects whether a switch affects the machine-wide or the
// single-repository Git configuration.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)

// Orchestrator drives the profile lifecycle.
type Orchestrator struct {
	store       *account.Store
	ssh         *sshcfg.Engine
	git         *gitcfg.Binder
	passphrases keyring.PassphraseStore
	logger      *logging.Logger
}

// New wires an orchestrator from its collaborators.
func New(store *account.Store, ssh *sshcfg.Engine, git *gitcfg.Binder, passphrases keyring.PassphraseStore, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		store:       store,
		ssh:         ssh,
		git:         git,
		passphrases: passphrases,
		logger:      logger,
	}
}

// AddOptions carries everything needed to provision a new profile.
type AddOptions struct {
	Name        string
	GitUsername string
	GitEmail    string
	Provider    account.Provider
	CustomHost  string
	KeyType     string
	Passphrase  *secure.Passphrase
	// SavePassphrase stores the passphrase in the OS keyring after the
	// profile is created.
	SavePassphrase bool
	SigningKey     string
	IsDefault      bool
	// WorkspaceDir, when set, gets a conditional-include fragment bound
	// to the new profile.
	WorkspaceDir string
}

// Add provisions a profile end to end: key pair, SSH config block, store
// record, agent registration, and the optional workspace include.
func (o *Orchestrator) Add(ctx context.Context, opts AddOptions) (*account.Account, error) {
	// Validate up front so a bad name or email leaves no key file behind.
	if err := account.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if err := account.ValidateEmail(opts.GitEmail); err != nil {
		return nil, err
	}
	if !opts.Provider.Valid() {
		return nil, mgiterrors.ValidationError{
			Field:      "provider",
			Value:      string(opts.Provider),
			Message:    "unknown provider",
			Suggestion: "Use one of: github, gitlab, bitbucket, custom",
		}
	}

	passphrase := opts.Passphrase
	if passphrase == nil {
		passphrase = secure.Empty()
	}
	plain, err := passphrase.Reveal()
	if err != nil {
		return nil, err
	}

	privateKey, _, err := o.ssh.GenerateKey(ctx, opts.Name, opts.GitEmail, opts.KeyType, plain)
	if err != nil {
		return nil, err
	}

	hostAlias, err := o.ssh.AddConfigEntry(opts.Name, string(opts.Provider), opts.CustomHost)
	if err != nil {
		return nil, err
	}

	acct, err := o.store.Add(account.Account{
		Name:        opts.Name,
		GitUsername: opts.GitUsername,
		GitEmail:    opts.GitEmail,
		Provider:    opts.Provider,
		HostAlias:   hostAlias,
		SSHKeyPath:  privateKey,
		SigningKey:  opts.SigningKey,
		CustomHost:  opts.CustomHost,
		IsDefault:   opts.IsDefault,
	})
	if err != nil {
		return nil, err
	}
	o.logger.Success("Profile '%s' added", acct.Name)

	if opts.SavePassphrase && plain != "" {
		if err := o.passphrases.Save(acct.Name, plain); err != nil {
			o.logger.Warn("could not store passphrase in the system keyring: %v", err)
		} else {
			o.logger.Success("Passphrase stored in the system keyring")
		}
	}
	passphrase.Destroy()

	o.ssh.AddKeyToAgent(ctx, acct.Name)

	if opts.WorkspaceDir != "" {
		if err := o.git.ConditionalInclude(ctx, opts.WorkspaceDir, acct); err != nil {
			return nil, err
		}
	}

	if pub, ok := o.ssh.PublicKey(acct.Name); ok {
		o.logger.Plain("")
		o.logger.Info("Public SSH key (add this to your %s account):", acct.Provider)
		o.logger.Plain("%s", pub)
	}
	return acct, nil
}

// Remove deletes the profile's SSH config block, optionally its key files,
// any stored passphrase, and finally the store record. The caller is
// responsible for confirming with the user first. Earlier steps are not
// restored when a later one fails.
func (o *Orchestrator) Remove(ctx context.Context, name string, deleteKeys bool) error {
	acct, ok := o.store.Get(name)
	if !ok {
		return o.notFound(name)
	}

	if err := o.ssh.RemoveConfigEntry(acct.HostAlias); err != nil {
		return err
	}
	if deleteKeys {
		o.ssh.RemoveKeys(name)
	}
	if err := o.passphrases.Delete(name); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		o.logger.Warn("could not remove passphrase from the system keyring: %v", err)
	}
	if err := o.store.Remove(name); err != nil {
		return err
	}
	o.logger.Success("Profile '%s' removed", name)
	return nil
}

// Switch applies the profile's identity. Global scope also installs the
// insteadOf URL rewrite and promotes the profile to store default; local
// scope only rewrites the target repository's config.
func (o *Orchestrator) Switch(ctx context.Context, name string, scope Scope, repoPath string) error {
	acct, ok := o.store.Get(name)
	if !ok {
		return o.notFound(name)
	}

	switch scope {
	case ScopeGlobal:
		if err := o.git.ApplyGlobal(ctx, acct); err != nil {
			return err
		}
		if err := o.git.URLRewrite(ctx, acct); err != nil {
			return err
		}
		return o.store.SetDefault(name)
	case ScopeLocal:
		return o.git.ApplyLocal(ctx, acct, repoPath)
	default:
		return mgiterrors.ValidationError{
			Field:      "scope",
			Value:      string(scope),
			Message:    "unknown scope",
			Suggestion: "Use 'global' or 'local'",
		}
	}
}

// Clone clones url through the profile's host alias.
func (o *Orchestrator) Clone(ctx context.Context, name, url, destination string) error {
	acct, ok := o.store.Get(name)
	if !ok {
		return o.notFound(name)
	}
	return o.git.CloneWithAccount(ctx, acct, url, destination)
}

// Workspace binds a directory to the profile via a conditional include.
func (o *Orchestrator) Workspace(ctx context.Context, name, directory string) error {
	acct, ok := o.store.Get(name)
	if !ok {
		return o.notFound(name)
	}
	return o.git.ConditionalInclude(ctx, directory, acct)
}

// TestConnection probes SSH authentication for the profile's alias.
func (o *Orchestrator) TestConnection(ctx context.Context, name string) (bool, error) {
	acct, ok := o.store.Get(name)
	if !ok {
		return false, o.notFound(name)
	}
	return o.ssh.TestConnection(ctx, acct.HostAlias)
}

// ShowKey returns the profile's public key and its SHA256 fingerprint. The
// fingerprint is empty when the key does not parse.
func (o *Orchestrator) ShowKey(name string) (string, string, error) {
	if _, ok := o.store.Get(name); !ok {
		return "", "", o.notFound(name)
	}
	pub, ok := o.ssh.PublicKey(name)
	if !ok {
		return "", "", mgiterrors.NotFoundError{
			Kind:       "SSH key",
			Name:       name,
			Suggestion: "Generate one with 'mgit add'",
		}
	}
	fingerprint, err := sshcfg.Fingerprint(pub)
	if err != nil {
		fingerprint = ""
	}
	return pub, fingerprint, nil
}

// Current prints the effective Git identity and the active profile.
func (o *Orchestrator) Current(ctx context.Context, repoPath string) {
	o.git.ShowCurrentConfig(ctx, repoPath)
	if def, ok := o.store.GetDefault(); ok {
		o.logger.Plain("Active mgit profile: %s", def.Name)
	} else {
		o.logger.Warn("No mgit profiles configured. Run 'mgit add' to get started.")
	}
}

// List returns all profiles in name order.
func (o *Orchestrator) List() []*account.Account {
	return o.store.List()
}

// Get returns one profile by name.
func (o *Orchestrator) Get(name string) (*account.Account, bool) {
	return o.store.Get(name)
}

// ListKeys enumerates managed key pairs on disk.
func (o *Orchestrator) ListKeys() ([]sshcfg.KeyInfo, error) {
	return o.ssh.ListKeys()
}

func (o *Orchestrator) notFound(name string) error {
	return mgiterrors.NotFoundError{
		Kind:       "profile",
		Name:       name,
		Suggestion: "Run 'mgit list' to see configured profiles",
	}
}
