// Package account implements the durable profile store: named Git
// identities persisted as a single versioned YAML document.
package account

import (
	"regexp"

	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
)

// Provider identifies a Git hosting provider.
type Provider string

const (
	ProviderGitHub    Provider = "github"
	ProviderGitLab    Provider = "gitlab"
	ProviderBitbucket Provider = "bitbucket"
	ProviderCustom    Provider = "custom"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	switch p {
	case ProviderGitHub, ProviderGitLab, ProviderBitbucket, ProviderCustom:
		return true
	}
	return false
}

// Account is a single Git identity: one SSH keypair, one host alias, one
// user.name/user.email pair.
type Account struct {
	Name        string   `yaml:"name"`
	GitUsername string   `yaml:"git_username"`
	GitEmail    string   `yaml:"git_email"`
	Provider    Provider `yaml:"provider"`
	HostAlias   string   `yaml:"host_alias"`
	SSHKeyPath  string   `yaml:"ssh_key_path"`
	SigningKey  string   `yaml:"signing_key,omitempty"`
	CustomHost  string   `yaml:"custom_host,omitempty"`
	IsDefault   bool     `yaml:"is_default"`
}

// Patch enumerates the fields Update may change. Nil fields are left alone.
type Patch struct {
	GitUsername *string
	GitEmail    *string
	SigningKey  *string
	SSHKeyPath  *string
}

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidateName checks a profile name: alphanumerics, hyphens, underscores.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return mgiterrors.ValidationError{
			Field:      "name",
			Value:      name,
			Message:    "invalid profile name",
			Suggestion: "Use only letters, digits, hyphens, and underscores",
		}
	}
	return nil
}

// ValidateEmail checks basic email syntax.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return mgiterrors.ValidationError{
			Field:      "email",
			Value:      email,
			Message:    "invalid email address",
			Suggestion: "Use the form user@example.com",
		}
	}
	return nil
}
