package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_Table(t *testing.T) {
	env := newTestEnv(t)
	env.addProfile(t, "alice")
	env.addProfile(t, "bob")

	cmd := NewListCommand(env.cfg)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	table := out.String()
	assert.Contains(t, table, "NAME")
	assert.Contains(t, table, "alice")
	assert.Contains(t, table, "bob")
	assert.Contains(t, table, "github.com-alice")

	// alice was added first, so she carries the default mark.
	var aliceLine string
	for _, line := range bytes.Split(out.Bytes(), []byte("\n")) {
		if bytes.Contains(line, []byte("alice")) {
			aliceLine = string(line)
		}
	}
	assert.Contains(t, aliceLine, "✓")
}

func TestListCommand_Empty(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, runCommand(t, NewListCommand(env.cfg)))
	assert.Contains(t, env.out.String(), "No profiles configured")
}
