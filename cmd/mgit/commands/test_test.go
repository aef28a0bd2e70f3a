package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrajsRamteke/mgit/tests/testutil"
)

func TestTestCommand_Success(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(t, "work")

	require.NoError(t, runCommand(t, NewTestCommand(env.cfg), "work"))
	assert.True(t, env.runner.CalledWith("ssh -T git@github.com-work"))
	assert.Contains(t, env.out.String(), "SSH authentication succeeded")
}

func TestTestCommand_AuthenticatedWithNonZeroExit(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(t, "work")
	// GitHub closes the session with exit 1 even on success.
	env.runner.AddResponse("ssh -T", testutil.MockResponse{
		Stderr: []byte("Hi work! You've successfully authenticated, but GitHub does not provide shell access.\n"),
		Err:    assert.AnError,
	})

	require.NoError(t, runCommand(t, NewTestCommand(env.cfg), "work"))
}

func TestTestCommand_Failure(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(t, "work")
	env.runner.AddErrorResponse("ssh -T", "Permission denied (publickey).", 255)

	err := runCommand(t, NewTestCommand(env.cfg), "work")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}
