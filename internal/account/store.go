package account

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
	"github.com/PrajsRamteke/mgit/internal/logging"
)

// storeVersion is the document version written on every save.
const storeVersion = "1.0"

// document is the on-disk shape of the account store.
type document struct {
	Version  string              `yaml:"version"`
	Accounts map[string]*Account `yaml:"accounts"`
}

// Store holds all profiles in memory and rewrites the whole document on
// every mutation. There is no file locking; concurrent invocations race and
// the last writer wins.
type Store struct {
	path     string
	logger   *logging.Logger
	accounts map[string]*Account
}

// NewStore loads the store at path. A missing file yields an empty store.
// A document that fails to parse logs a warning and also yields an empty
// store; the corrupt file is left in place until the next mutation.
func NewStore(path string, logger *logging.Logger) *Store {
	s := &Store{
		path:     path,
		logger:   logger,
		accounts: make(map[string]*Account),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cannot read account store %s: %v", s.path, err)
		}
		return
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		parseErr := mgiterrors.ParseError{Path: s.path, Message: "corrupt account store", Err: err}
		s.logger.Warn("%v", parseErr)
		s.logger.Warn("starting with an empty account store; existing profiles will be overwritten on the next change")
		return
	}
	for name, acct := range doc.Accounts {
		if acct == nil {
			continue
		}
		if acct.Name == "" {
			acct.Name = name
		}
		s.accounts[name] = acct
	}
}

func (s *Store) save() error {
	doc := document{Version: storeVersion, Accounts: s.accounts}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding account store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing account store: %w", err)
	}
	return nil
}

// Add validates and persists a new account. The first account ever added is
// forced to be the default; a new default clears the flag everywhere else.
func (s *Store) Add(acct Account) (*Account, error) {
	if err := ValidateName(acct.Name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(acct.GitEmail); err != nil {
		return nil, err
	}
	if _, exists := s.accounts[acct.Name]; exists {
		return nil, mgiterrors.DuplicateError{Name: acct.Name}
	}

	if len(s.accounts) == 0 {
		acct.IsDefault = true
	}
	if acct.IsDefault {
		for _, other := range s.accounts {
			other.IsDefault = false
		}
	}

	stored := acct
	s.accounts[stored.Name] = &stored
	if err := s.save(); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Remove deletes the named account. It does not elect a new default when
// the removed account held the flag.
func (s *Store) Remove(name string) error {
	if _, ok := s.accounts[name]; !ok {
		return s.notFound(name)
	}
	delete(s.accounts, name)
	return s.save()
}

// Get returns the named account, or false when absent.
func (s *Store) Get(name string) (*Account, bool) {
	acct, ok := s.accounts[name]
	return acct, ok
}

// GetDefault returns the account flagged as default, falling back to the
// first account in name order, or false when the store is empty.
func (s *Store) GetDefault() (*Account, bool) {
	for _, acct := range s.sorted() {
		if acct.IsDefault {
			return acct, true
		}
	}
	if all := s.sorted(); len(all) > 0 {
		return all[0], true
	}
	return nil, false
}

// SetDefault moves the default flag to the named account.
func (s *Store) SetDefault(name string) error {
	if _, ok := s.accounts[name]; !ok {
		return s.notFound(name)
	}
	for _, acct := range s.accounts {
		acct.IsDefault = acct.Name == name
	}
	return s.save()
}

// Update merges the non-nil fields of patch into the named account.
func (s *Store) Update(name string, patch Patch) (*Account, error) {
	acct, ok := s.accounts[name]
	if !ok {
		return nil, s.notFound(name)
	}
	if patch.GitUsername != nil {
		acct.GitUsername = *patch.GitUsername
	}
	if patch.GitEmail != nil {
		if err := ValidateEmail(*patch.GitEmail); err != nil {
			return nil, err
		}
		acct.GitEmail = *patch.GitEmail
	}
	if patch.SigningKey != nil {
		acct.SigningKey = *patch.SigningKey
	}
	if patch.SSHKeyPath != nil {
		acct.SSHKeyPath = *patch.SSHKeyPath
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return acct, nil
}

// List returns all accounts in name order.
func (s *Store) List() []*Account {
	return s.sorted()
}

// Len returns the number of stored accounts.
func (s *Store) Len() int {
	return len(s.accounts)
}

func (s *Store) sorted() []*Account {
	all := make([]*Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		all = append(all, acct)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func (s *Store) notFound(name string) error {
	return mgiterrors.NotFoundError{
		Kind:       "profile",
		Name:       name,
		Suggestion: "Run 'mgit list' to see configured profiles",
	}
}
