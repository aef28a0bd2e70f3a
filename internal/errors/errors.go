// Package errors defines the error taxonomy shared across mgit. Every
// failure a user can hit maps onto one of these types, so the CLI layer can
// print a consistent message plus a suggestion and exit non-zero.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports malformed user input: a bad profile name, a bad
// email, or a missing required field for the chosen provider.
type ValidationError struct {
	Field      string
	Value      string
	Message    string
	Suggestion string
}

func (e ValidationError) Error() string {
	msg := "validation error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (value: %s)", e.Value)
	}
	msg += ": " + e.Message
	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}
	return msg
}

// DuplicateError reports a profile name collision on add.
type DuplicateError struct {
	Name string
}

func (e DuplicateError) Error() string {
	return fmt.Sprintf("profile '%s' already exists\n  💡 Pick a different name or remove the existing profile first", e.Name)
}

// NotFoundError reports an unknown profile name, host alias, or key file.
type NotFoundError struct {
	Kind       string // "profile", "host alias", "SSH key"
	Name       string
	Suggestion string
}

func (e NotFoundError) Error() string {
	msg := fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}
	return msg
}

// ExternalToolError reports a shelled-out command that exited non-zero or
// could not be started at all.
type ExternalToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e ExternalToolError) Error() string {
	msg := fmt.Sprintf("command '%s' failed", strings.Join(append([]string{e.Tool}, e.Args...), " "))
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code: %d)", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n  stderr: " + stderr
	}
	if e.Err != nil && e.ExitCode == 0 {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ExternalToolError) Unwrap() error {
	return e.Err
}

// WrapToolNotFound wraps a missing-executable error with an install hint.
func WrapToolNotFound(tool string, err error) error {
	suggestions := map[string]string{
		"git":        "Install Git from https://git-scm.com/",
		"ssh":        "Install OpenSSH (usually the openssh-client package)",
		"ssh-keygen": "Install OpenSSH (usually the openssh-client package)",
		"ssh-add":    "Install OpenSSH and make sure ssh-agent is running",
	}
	suggestion := suggestions[tool]
	if suggestion == "" {
		suggestion = fmt.Sprintf("Make sure '%s' is installed and in your PATH", tool)
	}
	return ExternalToolError{
		Tool:   tool,
		Stderr: "command not found\n  💡 " + suggestion,
		Err:    err,
	}
}

// RepositoryStateError reports a local-scope operation attempted outside a
// Git working tree.
type RepositoryStateError struct {
	Path string
}

func (e RepositoryStateError) Error() string {
	return fmt.Sprintf("'%s' is not a Git repository\n  💡 Run inside a repository or pass --repo-path", e.Path)
}

// ParseError reports a persisted file the tool could not make sense of:
// a corrupt account store or an unterminated managed block in the SSH config.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse %s: %s", e.Path, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// IsDuplicate reports whether err is a DuplicateError anywhere in its chain.
func IsDuplicate(err error) bool {
	var de DuplicateError
	return errors.As(err, &de)
}
