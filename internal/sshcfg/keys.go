package sshcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/ssh"

	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
	"github.com/PrajsRamteke/mgit/pkg/exec"
)

// keyTypes is the lookup priority when locating an account's key on disk.
var keyTypes = []string{"ed25519", "rsa", "ecdsa"}

// KeyInfo describes one managed key pair found in the SSH directory.
type KeyInfo struct {
	Account       string
	Type          string
	Path          string
	PublicKeyPath string
}

func keyFileName(keyType, accountName string) string {
	return fmt.Sprintf("id_%s_%s", keyType, accountName)
}

// GenerateKey creates a key pair for the account via ssh-keygen. When the
// private key file already exists the generation is skipped and the existing
// paths are returned; idempotence is by file presence, not content.
func (e *Engine) GenerateKey(ctx context.Context, accountName, email, keyType, passphrase string) (string, string, error) {
	if keyType != "ed25519" && keyType != "rsa" {
		return "", "", mgiterrors.ValidationError{
			Field:      "key-type",
			Value:      keyType,
			Message:    "unsupported key type",
			Suggestion: "Use ed25519 or rsa",
		}
	}

	privatePath := filepath.Join(e.sshDir, keyFileName(keyType, accountName))
	publicPath := privatePath + ".pub"

	if _, err := os.Stat(privatePath); err == nil {
		e.logger.Warn("SSH key already exists for profile '%s', skipping generation", accountName)
		return privatePath, publicPath, nil
	}

	if err := os.MkdirAll(e.sshDir, 0o700); err != nil {
		return "", "", fmt.Errorf("creating SSH directory: %w", err)
	}

	args := []string{"-t", keyType, "-C", email, "-f", privatePath, "-N", passphrase}
	if keyType == "rsa" {
		args = append(args, "-b", "4096")
	}

	_, stderr, err := e.runner.Execute(ctx, "ssh-keygen", args...)
	if err != nil {
		if exec.IsNotInstalled(err) {
			return "", "", mgiterrors.WrapToolNotFound("ssh-keygen", err)
		}
		return "", "", mgiterrors.ExternalToolError{
			Tool:     "ssh-keygen",
			Args:     args,
			ExitCode: exec.ExitCode(err),
			Stderr:   string(stderr),
			Err:      err,
		}
	}

	e.logger.Success("SSH key generated: %s", privatePath)
	return privatePath, publicPath, nil
}

// RemoveKeys deletes the private and public key files for every supported
// key type. Missing files are silently skipped.
func (e *Engine) RemoveKeys(accountName string) {
	for _, keyType := range keyTypes {
		for _, suffix := range []string{"", ".pub"} {
			path := filepath.Join(e.sshDir, keyFileName(keyType, accountName)+suffix)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := os.Remove(path); err != nil {
				e.logger.Warn("could not delete %s: %v", path, err)
				continue
			}
			e.logger.Success("Deleted: %s", path)
		}
	}
}

// PublicKey returns the trimmed contents of the account's public key file,
// trying key types in priority order. The second return is false when no
// key exists.
func (e *Engine) PublicKey(accountName string) (string, bool) {
	for _, keyType := range keyTypes {
		path := filepath.Join(e.sshDir, keyFileName(keyType, accountName)+".pub")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return strings.TrimSpace(string(data)), true
	}
	return "", false
}

// Fingerprint returns the SHA256 fingerprint of an authorized-keys format
// public key.
func Fingerprint(publicKey string) (string, error) {
	key, _, _, _, err := ssh.ParseAuthorizedKey([]byte(publicKey))
	if err != nil {
		return "", fmt.Errorf("parsing public key: %w", err)
	}
	return ssh.FingerprintSHA256(key), nil
}

// findKey locates the account's private key on disk, trying key types in
// priority order.
func (e *Engine) findKey(accountName string) (string, bool) {
	for _, keyType := range keyTypes {
		path := filepath.Join(e.sshDir, keyFileName(keyType, accountName))
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// AddKeyToAgent registers the account's private key with the running
// ssh-agent. Failure is reported, not fatal.
func (e *Engine) AddKeyToAgent(ctx context.Context, accountName string) {
	keyPath, ok := e.findKey(accountName)
	if !ok {
		e.logger.Error("no SSH key found for profile '%s'", accountName)
		return
	}
	_, stderr, err := e.runner.Execute(ctx, "ssh-add", keyPath)
	if err != nil {
		e.logger.Warn("could not add key to ssh-agent: %s", strings.TrimSpace(string(stderr)))
		return
	}
	e.logger.Success("Key added to ssh-agent: %s", keyPath)
}

// ListKeys enumerates managed key pairs in the SSH directory. Filenames
// that do not decode as id_<type>_<account> are skipped.
func (e *Engine) ListKeys() ([]KeyInfo, error) {
	entries, err := os.ReadDir(e.sshDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading SSH directory: %w", err)
	}

	var keys []KeyInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "id_") || strings.HasSuffix(name, ".pub") {
			continue
		}
		parts := strings.SplitN(name, "_", 3)
		if len(parts) != 3 {
			continue
		}
		path := filepath.Join(e.sshDir, name)
		keys = append(keys, KeyInfo{
			Account:       parts[2],
			Type:          parts[1],
			Path:          path,
			PublicKeyPath: path + ".pub",
		})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Path < keys[j].Path })
	return keys, nil
}
