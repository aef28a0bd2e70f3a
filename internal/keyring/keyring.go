// Package keyring stores SSH key passphrases in the operating system's
// credential store (Secret Service, Keychain, or the Windows credential
// manager), keyed by profile name.
package keyring

import (
	"errors"

	zkeyring "github.com/zalando/go-keyring"
)

// service is the keyring service name all mgit entries live under.
const service = "mgit"

// ErrNotFound is returned by Get when no passphrase is stored for the
// profile.
var ErrNotFound = errors.New("no passphrase stored for profile")

// PassphraseStore saves and retrieves per-profile key passphrases.
type PassphraseStore interface {
	Save(profile, passphrase string) error
	Get(profile string) (string, error)
	Delete(profile string) error
}

// systemStore is the production implementation over the OS keyring.
type systemStore struct{}

// System returns the operating-system-backed passphrase store.
func System() PassphraseStore {
	return systemStore{}
}

func (systemStore) Save(profile, passphrase string) error {
	return zkeyring.Set(service, profile, passphrase)
}

func (systemStore) Get(profile string) (string, error) {
	secret, err := zkeyring.Get(service, profile)
	if err != nil {
		if errors.Is(err, zkeyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return secret, nil
}

func (systemStore) Delete(profile string) error {
	err := zkeyring.Delete(service, profile)
	if errors.Is(err, zkeyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
