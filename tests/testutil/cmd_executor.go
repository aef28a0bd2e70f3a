// Package testutil provides testing utilities for mgit.
package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// MockCommandExecutor provides a configurable double for the external tools
// mgit shells out to (ssh-keygen, ssh-add, ssh, git).
type MockCommandExecutor struct {
	mu sync.Mutex

	// Responses maps command patterns to their mock responses.
	// Key format: "command arg1 arg2" (space-separated command and args).
	// A pattern matches when the executed command line starts with it.
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching pattern is found.
	DefaultResponse *MockResponse

	// RecordedCalls stores all calls made to Execute for verification.
	RecordedCalls []RecordedCall

	// StrictMode causes Execute to fail if no matching response is found.
	StrictMode bool

	// OnCall, when set, runs before each recorded call. Tests use it to
	// create the key files ssh-keygen would have written.
	OnCall func(call RecordedCall)
}

// MockResponse defines the scripted output for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// RecordedCall stores information about a command execution.
type RecordedCall struct {
	Command string
	Args    []string
	Dir     string
}

// NewMockCommandExecutor creates a new mock executor with empty responses.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Responses:     make(map[string]MockResponse),
		RecordedCalls: make([]RecordedCall, 0),
	}
}

// Execute returns the mocked response for the given command.
func (m *MockCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return m.ExecuteDir(ctx, "", name, args...)
}

// ExecuteDir returns the mocked response, recording the working directory.
func (m *MockCommandExecutor) ExecuteDir(_ context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := RecordedCall{Command: name, Args: args, Dir: dir}
	m.RecordedCalls = append(m.RecordedCalls, call)
	if m.OnCall != nil {
		m.OnCall(call)
	}

	key := buildKey(name, args)

	if resp, ok := m.Responses[key]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}
	for pattern, resp := range m.Responses {
		if strings.HasPrefix(key, pattern) {
			return resp.Stdout, resp.Stderr, resp.Err
		}
	}

	if m.DefaultResponse != nil {
		return m.DefaultResponse.Stdout, m.DefaultResponse.Stderr, m.DefaultResponse.Err
	}
	if m.StrictMode {
		return nil, nil, fmt.Errorf("mock: no response configured for command: %s", key)
	}
	return []byte{}, []byte{}, nil
}

// AddResponse registers a mock response for a command pattern.
func (m *MockCommandExecutor) AddResponse(commandPattern string, response MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[commandPattern] = response
}

// AddErrorResponse registers a failing response for a command pattern.
func (m *MockCommandExecutor) AddErrorResponse(commandPattern, errMsg string, exitCode int) {
	m.AddResponse(commandPattern, MockResponse{
		Stderr: []byte(errMsg),
		Err:    fmt.Errorf("exit status %d: %s", exitCode, errMsg),
	})
}

// AddNotInstalledResponse makes a command fail as if its binary were
// missing from the PATH.
func (m *MockCommandExecutor) AddNotInstalledResponse(command string) {
	m.AddResponse(command, MockResponse{
		Err: fmt.Errorf("%s: %w", command, exec.ErrNotFound),
	})
}

// CallLines returns every recorded call as a single command line, for
// asserting on invocation order.
func (m *MockCommandExecutor) CallLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.RecordedCalls))
	for i, call := range m.RecordedCalls {
		lines[i] = buildKey(call.Command, call.Args)
	}
	return lines
}

// CalledWith reports whether any recorded call line starts with prefix.
func (m *MockCommandExecutor) CalledWith(prefix string) bool {
	for _, line := range m.CallLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func buildKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
