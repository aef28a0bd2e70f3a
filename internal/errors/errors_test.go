package errors

import (
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := ValidationError{
		Field:      "email",
		Value:      "not-an-email",
		Message:    "invalid email address",
		Suggestion: "Use the form user@example.com",
	}
	assert.Contains(t, err.Error(), "field 'email'")
	assert.Contains(t, err.Error(), "not-an-email")
	assert.Contains(t, err.Error(), "💡")
	assert.True(t, IsValidation(err))
	assert.True(t, IsValidation(fmt.Errorf("add: %w", error(err))))
	assert.False(t, IsNotFound(err))
}

func TestDuplicateError(t *testing.T) {
	err := DuplicateError{Name: "work"}
	assert.Contains(t, err.Error(), "'work' already exists")
	assert.True(t, IsDuplicate(err))
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError{Kind: "profile", Name: "ghost", Suggestion: "Run 'mgit list'"}
	assert.Equal(t, "profile 'ghost' not found\n  💡 Run 'mgit list'", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("switch: %w", error(err))))
}

func TestExternalToolError(t *testing.T) {
	err := ExternalToolError{
		Tool:     "ssh-keygen",
		Args:     []string{"-t", "ed25519"},
		ExitCode: 1,
		Stderr:   "Saving key failed\n",
	}
	assert.Contains(t, err.Error(), "'ssh-keygen -t ed25519' failed")
	assert.Contains(t, err.Error(), "exit code: 1")
	assert.Contains(t, err.Error(), "Saving key failed")
}

func TestWrapToolNotFound(t *testing.T) {
	err := WrapToolNotFound("git", exec.ErrNotFound)
	assert.Contains(t, err.Error(), "git-scm.com")

	err = WrapToolNotFound("frobnicate", exec.ErrNotFound)
	assert.Contains(t, err.Error(), "'frobnicate' is installed")
}

func TestParseErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("yaml: line 3")
	err := ParseError{Path: "/home/u/.mgit/config.yaml", Message: "corrupt store", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "corrupt store")
}
