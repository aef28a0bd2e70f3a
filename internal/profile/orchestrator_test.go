package profile

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrajsRamteke/mgit/internal/account"
	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
	"github.com/PrajsRamteke/mgit/internal/gitcfg"
	"github.com/PrajsRamteke/mgit/internal/keyring"
	"github.com/PrajsRamteke/mgit/internal/logging"
	"github.com/PrajsRamteke/mgit/internal/secure"
	"github.com/PrajsRamteke/mgit/internal/sshcfg"
	"github.com/PrajsRamteke/mgit/tests/testutil"
)

// memoryPassphrases is an in-memory PassphraseStore double.
type memoryPassphrases map[string]string

func (m memoryPassphrases) Save(profile, passphrase string) error {
	m[profile] = passphrase
	return nil
}

func (m memoryPassphrases) Get(profile string) (string, error) {
	p, ok := m[profile]
	if !ok {
		return "", keyring.ErrNotFound
	}
	return p, nil
}

func (m memoryPassphrases) Delete(profile string) error {
	if _, ok := m[profile]; !ok {
		return keyring.ErrNotFound
	}
	delete(m, profile)
	return nil
}

type fixture struct {
	orch        *Orchestrator
	mock        *testutil.MockCommandExecutor
	store       *account.Store
	passphrases memoryPassphrases
	sshDir      string
	out         *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	base := t.TempDir()
	sshDir := filepath.Join(base, ".ssh")
	var buf bytes.Buffer
	logger := logging.New(&buf, false, true)

	mock := testutil.NewMockCommandExecutor()
	mock.OnCall = testutil.KeygenTouch(t)

	store := account.NewStore(filepath.Join(base, ".mgit", "config.yaml"), logger)
	engine := sshcfg.NewEngine(sshDir, filepath.Join(sshDir, "config"), mock, logger)
	binder := gitcfg.NewBinder(mock, logger)
	passphrases := memoryPassphrases{}

	return &fixture{
		orch:        New(store, engine, binder, passphrases, logger),
		mock:        mock,
		store:       store,
		passphrases: passphrases,
		sshDir:      sshDir,
		out:         &buf,
	}
}

func githubAdd(name string) AddOptions {
	return AddOptions{
		Name:        name,
		GitUsername: name + "-user",
		GitEmail:    name + "@example.com",
		Provider:    account.ProviderGitHub,
		KeyType:     "ed25519",
	}
}

func TestAddRunsStepsInOrder(t *testing.T) {
	f := newFixture(t)

	acct, err := f.orch.Add(context.Background(), githubAdd("alice"))
	require.NoError(t, err)

	assert.Equal(t, "github.com-alice", acct.HostAlias)
	assert.Equal(t, filepath.Join(f.sshDir, "id_ed25519_alice"), acct.SSHKeyPath)
	assert.True(t, acct.IsDefault, "first profile becomes default")

	lines := f.mock.CallLines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ssh-keygen -t ed25519")
	assert.Contains(t, lines[1], "ssh-add "+acct.SSHKeyPath)

	content := testutil.ReadFile(t, filepath.Join(f.sshDir, "config"))
	assert.Contains(t, content, "# mgit-managed: github.com-alice")

	// The public key is echoed for the provider.
	assert.Contains(t, f.out.String(), "Public SSH key")
}

func TestAddInvalidEmailLeavesNoKey(t *testing.T) {
	f := newFixture(t)

	opts := githubAdd("bad")
	opts.GitEmail = "not-an-email"
	_, err := f.orch.Add(context.Background(), opts)

	assert.True(t, mgiterrors.IsValidation(err))
	assert.Empty(t, f.mock.RecordedCalls, "no external tool may run on validation failure")
	assert.NoFileExists(t, filepath.Join(f.sshDir, "id_ed25519_bad"))
	_, ok := f.store.Get("bad")
	assert.False(t, ok)
}

func TestAddWithWorkspaceAndPassphrase(t *testing.T) {
	f := newFixture(t)
	workspace := filepath.Join(t.TempDir(), "work-projects")

	opts := githubAdd("work")
	opts.Passphrase = secure.NewPassphrase([]byte("hunter2"))
	opts.SavePassphrase = true
	opts.WorkspaceDir = workspace
	_, err := f.orch.Add(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, f.mock.CallLines()[0], "-N hunter2")
	assert.Equal(t, "hunter2", f.passphrases["work"])
	assert.FileExists(t, filepath.Join(workspace, ".gitconfig"))
	assert.True(t, f.mock.CalledWith("git config --global includeIf.gitdir:"))
}

func TestAddSecondDefaultFlipsFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orch.Add(ctx, githubAdd("alice"))
	require.NoError(t, err)

	bob := githubAdd("bob")
	bob.IsDefault = true
	_, err = f.orch.Add(ctx, bob)
	require.NoError(t, err)

	alice, _ := f.store.Get("alice")
	assert.False(t, alice.IsDefault)
	def, _ := f.store.GetDefault()
	assert.Equal(t, "bob", def.Name)

	content := testutil.ReadFile(t, filepath.Join(f.sshDir, "config"))
	assert.Contains(t, content, "# mgit-managed: github.com-alice")
	assert.Contains(t, content, "# mgit-managed: github.com-bob")
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orch.Add(ctx, githubAdd("alice"))
	require.NoError(t, err)
	bobOpts := githubAdd("bob")
	bobOpts.Passphrase = secure.NewPassphrase([]byte("pw"))
	bobOpts.SavePassphrase = true
	_, err = f.orch.Add(ctx, bobOpts)
	require.NoError(t, err)

	require.NoError(t, f.orch.Remove(ctx, "bob", true))

	_, ok := f.store.Get("bob")
	assert.False(t, ok)
	assert.NoFileExists(t, filepath.Join(f.sshDir, "id_ed25519_bob"))
	_, err = f.passphrases.Get("bob")
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	content := testutil.ReadFile(t, filepath.Join(f.sshDir, "config"))
	assert.NotContains(t, content, "github.com-bob")
	assert.Contains(t, content, "# mgit-managed: github.com-alice")

	t.Run("keep keys", func(t *testing.T) {
		require.NoError(t, f.orch.Remove(ctx, "alice", false))
		assert.FileExists(t, filepath.Join(f.sshDir, "id_ed25519_alice"))
	})

	t.Run("unknown profile", func(t *testing.T) {
		assert.True(t, mgiterrors.IsNotFound(f.orch.Remove(ctx, "ghost", true)))
	})
}

func TestSwitch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orch.Add(ctx, githubAdd("alice"))
	require.NoError(t, err)
	_, err = f.orch.Add(ctx, githubAdd("bob"))
	require.NoError(t, err)

	t.Run("global promotes to default", func(t *testing.T) {
		require.NoError(t, f.orch.Switch(ctx, "bob", ScopeGlobal, ""))

		assert.True(t, f.mock.CalledWith("git config --global user.name bob-user"))
		assert.True(t, f.mock.CalledWith("git config --global user.email bob@example.com"))
		def, _ := f.store.GetDefault()
		assert.Equal(t, "bob", def.Name)
	})

	t.Run("local never touches the default", func(t *testing.T) {
		require.NoError(t, f.orch.Switch(ctx, "alice", ScopeLocal, "/repos/proj"))

		assert.True(t, f.mock.CalledWith("git config --local user.name alice-user"))
		def, _ := f.store.GetDefault()
		assert.Equal(t, "bob", def.Name, "local switch must not move the default flag")
	})

	t.Run("unknown scope", func(t *testing.T) {
		assert.True(t, mgiterrors.IsValidation(f.orch.Switch(ctx, "alice", Scope("repo"), "")))
	})

	t.Run("unknown profile", func(t *testing.T) {
		assert.True(t, mgiterrors.IsNotFound(f.orch.Switch(ctx, "ghost", ScopeGlobal, "")))
	})
}

func TestThinDelegationsRequireProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.True(t, mgiterrors.IsNotFound(f.orch.Clone(ctx, "ghost", "git@github.com:o/r.git", "")))
	assert.True(t, mgiterrors.IsNotFound(f.orch.Workspace(ctx, "ghost", t.TempDir())))
	_, err := f.orch.TestConnection(ctx, "ghost")
	assert.True(t, mgiterrors.IsNotFound(err))
	_, _, err = f.orch.ShowKey("ghost")
	assert.True(t, mgiterrors.IsNotFound(err))

	assert.Empty(t, f.mock.RecordedCalls, "missing profiles must cause no side effects")
}

func TestTestConnectionUsesAlias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orch.Add(ctx, githubAdd("alice"))
	require.NoError(t, err)
	f.mock.AddResponse("ssh -T git@github.com-alice", testutil.MockResponse{Stdout: []byte("ok")})

	ok, err := f.orch.TestConnection(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, f.mock.CalledWith("ssh -T git@github.com-alice"))
}

func TestShowKey(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.Add(context.Background(), githubAdd("alice"))
	require.NoError(t, err)

	pub, fingerprint, err := f.orch.ShowKey("alice")
	require.NoError(t, err)
	assert.Contains(t, pub, "ssh-ed25519")
	// The fixture key is not parseable material, so the fingerprint is
	// empty rather than an error.
	assert.Equal(t, "", fingerprint)
}

func TestCurrentReportsActiveProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.orch.Current(ctx, "/tmp/elsewhere")
	assert.Contains(t, f.out.String(), "No mgit profiles configured")

	_, err := f.orch.Add(ctx, githubAdd("alice"))
	require.NoError(t, err)
	f.out.Reset()

	f.orch.Current(ctx, "/tmp/elsewhere")
	assert.Contains(t, f.out.String(), "Active mgit profile: alice")
}
