package sshcfg

import (
	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
)

// providerHosts maps each hosting provider to its canonical SSH host.
var providerHosts = map[string]string{
	"github":    "github.com",
	"gitlab":    "gitlab.com",
	"bitbucket": "bitbucket.org",
}

// HostForProvider resolves a provider name to its SSH host. The custom
// provider requires a caller-supplied host.
func HostForProvider(provider, customHost string) (string, error) {
	if provider == "custom" {
		if customHost == "" {
			return "", mgiterrors.ValidationError{
				Field:      "custom-host",
				Message:    "a host is required when provider is 'custom'",
				Suggestion: "Pass --custom-host git.example.com",
			}
		}
		return customHost, nil
	}
	host, ok := providerHosts[provider]
	if !ok {
		return "", mgiterrors.ValidationError{
			Field:      "provider",
			Value:      provider,
			Message:    "unknown provider",
			Suggestion: "Use one of: github, gitlab, bitbucket, custom",
		}
	}
	return host, nil
}

// HostAlias derives the SSH Host nickname for an account on a host.
// The alias selects the account's key in place of the provider's real
// hostname, e.g. github.com-work.
func HostAlias(host, accountName string) string {
	return host + "-" + accountName
}
