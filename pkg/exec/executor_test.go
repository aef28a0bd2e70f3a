package exec

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommandExecutor_Execute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		command     string
		args        []string
		wantSuccess bool
		wantOutput  string
	}{
		{
			name:        "echo command",
			command:     "echo",
			args:        []string{"hello"},
			wantSuccess: true,
			wantOutput:  "hello\n",
		},
		{
			name:        "command with multiple args",
			command:     "echo",
			args:        []string{"git@github.com-work:org/repo.git", "dest"},
			wantSuccess: true,
			wantOutput:  "git@github.com-work:org/repo.git dest\n",
		},
		{
			name:        "invalid command",
			command:     "nonexistent_command_xyz123",
			args:        []string{},
			wantSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := &RealCommandExecutor{}
			stdout, _, err := executor.Execute(context.Background(), tt.command, tt.args...)

			if tt.wantSuccess {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutput, string(stdout))
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestRealCommandExecutor_ExecuteDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	executor := DefaultExecutor()

	stdout, _, err := executor.ExecuteDir(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, string(stdout), dir)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, -1, ExitCode(errors.New("plain error")))

	// A real non-zero exit produces an *exec.ExitError.
	executor := &RealCommandExecutor{}
	_, _, err := executor.Execute(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))
}

func TestIsNotInstalled(t *testing.T) {
	t.Parallel()

	_, err := exec.LookPath("nonexistent_command_xyz123")
	assert.True(t, IsNotInstalled(err))
	assert.False(t, IsNotInstalled(errors.New("other")))
}
