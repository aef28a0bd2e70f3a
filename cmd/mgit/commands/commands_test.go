package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/PrajsRamteke/mgit/internal/config"
	"github.com/PrajsRamteke/mgit/internal/keyring"
	"github.com/PrajsRamteke/mgit/internal/logging"
	"github.com/PrajsRamteke/mgit/tests/testutil"
)

// fakePassphrases keeps passphrases in a map so tests never touch the
// OS keyring.
type fakePassphrases struct {
	saved map[string]string
}

func newFakePassphrases() *fakePassphrases {
	return &fakePassphrases{saved: make(map[string]string)}
}

func (f *fakePassphrases) Save(profile, passphrase string) error {
	f.saved[profile] = passphrase
	return nil
}

func (f *fakePassphrases) Get(profile string) (string, error) {
	p, ok := f.saved[profile]
	if !ok {
		return "", keyring.ErrNotFound
	}
	return p, nil
}

func (f *fakePassphrases) Delete(profile string) error {
	delete(f.saved, profile)
	return nil
}

type testEnv struct {
	cfg    *config.Config
	out    *bytes.Buffer
	runner *testutil.MockCommandExecutor
	store  *fakePassphrases
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tempDir := t.TempDir()
	out := &bytes.Buffer{}
	runner := testutil.NewMockCommandExecutor()
	runner.OnCall = testutil.KeygenTouch(t)
	store := newFakePassphrases()

	return &testEnv{
		cfg: &config.Config{
			ConfigDir:      filepath.Join(tempDir, ".mgit"),
			SSHDir:         filepath.Join(tempDir, ".ssh"),
			Logger:         logging.New(out, false, true),
			NonInteractive: true,
			Runner:         runner,
			Passphrases:    store,
		},
		out:    out,
		runner: runner,
		store:  store,
	}
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func (e *testEnv) addProfile(t *testing.T, name string, extra ...string) {
	t.Helper()
	args := append([]string{name,
		"--username", name,
		"--email", name + "@example.com",
	}, extra...)
	require.NoError(t, runCommand(t, NewAddCommand(e.cfg), args...))
}
