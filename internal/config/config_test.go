package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{}
	require.NoError(t, cfg.Resolve())

	assert.Equal(t, filepath.Join(home, ".mgit"), cfg.ConfigDir)
	assert.Equal(t, filepath.Join(home, ".ssh"), cfg.SSHDir)
	assert.Equal(t, filepath.Join(home, ".mgit", "config.yaml"), cfg.StorePath())
	assert.Equal(t, filepath.Join(home, ".ssh", "config"), cfg.SSHConfigPath())
}

func TestResolveTildeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{ConfigDir: "~/custom/mgit", SSHDir: "/abs/ssh"}
	require.NoError(t, cfg.Resolve())

	assert.Equal(t, filepath.Join(home, "custom", "mgit"), cfg.ConfigDir)
	assert.Equal(t, "/abs/ssh", cfg.SSHDir)
}
