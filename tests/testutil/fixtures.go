package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteKeyPair creates fake private/public key files for an account, the
// way ssh-keygen would have named them.
func WriteKeyPair(t *testing.T, sshDir, keyType, account string) (string, string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(sshDir, 0o700))
	private := filepath.Join(sshDir, "id_"+keyType+"_"+account)
	public := private + ".pub"
	require.NoError(t, os.WriteFile(private, []byte("PRIVATE KEY\n"), 0o600))
	require.NoError(t, os.WriteFile(public, []byte("ssh-"+keyType+" AAAATEST "+account+"@example.com\n"), 0o644))
	return private, public
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// KeygenTouch returns an OnCall hook that creates the key files named by a
// recorded ssh-keygen invocation, mimicking the real tool's side effect.
func KeygenTouch(t *testing.T) func(RecordedCall) {
	t.Helper()
	return func(call RecordedCall) {
		if call.Command != "ssh-keygen" {
			return
		}
		for i, arg := range call.Args {
			if arg == "-f" && i+1 < len(call.Args) {
				path := call.Args[i+1]
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
				require.NoError(t, os.WriteFile(path, []byte("PRIVATE KEY\n"), 0o600))
				require.NoError(t, os.WriteFile(path+".pub", []byte("ssh-ed25519 AAAATEST generated\n"), 0o644))
			}
		}
	}
}
