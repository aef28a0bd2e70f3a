// Package secure holds key passphrases in protected memory between the
// moment they are read and the moment they are handed to ssh-keygen or the
// OS keyring. It wraps the memguard library: the plaintext is encrypted at
// rest in memory, mlocked against swapping, and wiped on destruction.
package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Passphrase is a protected in-memory passphrase.
type Passphrase struct {
	enclave   *memguard.Enclave
	mu        sync.Mutex
	destroyed bool
}

// NewPassphrase seals data into protected memory. The input slice is wiped
// by memguard as part of sealing.
func NewPassphrase(data []byte) *Passphrase {
	return &Passphrase{enclave: memguard.NewEnclave(data)}
}

// Empty returns a Passphrase holding no characters, for the common
// unprotected-key case.
func Empty() *Passphrase {
	return &Passphrase{}
}

// Reveal decrypts and returns the plaintext as a string. An empty or
// destroyed passphrase reveals "".
func (p *Passphrase) Reveal() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed || p.enclave == nil {
		return "", nil
	}
	locked, err := p.enclave.Open()
	if err != nil {
		return "", err
	}
	defer locked.Destroy()
	return string(locked.Bytes()), nil
}

// Destroy prevents further use. Idempotent. For full cleanup of all
// protected memory at exit, main defers memguard.Purge().
func (p *Passphrase) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enclave = nil
	p.destroyed = true
}
