package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/account"
	"github.com/PrajsRamteke/mgit/internal/config"
	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
	"github.com/PrajsRamteke/mgit/internal/hosting"
	"github.com/PrajsRamteke/mgit/internal/profile"
	"github.com/PrajsRamteke/mgit/internal/secure"
)

func NewAddCommand(cfg *config.Config) *cobra.Command {
	var (
		username       string
		email          string
		provider       string
		customHost     string
		keyType        string
		passphrase     string
		savePassphrase bool
		signingKey     string
		isDefault      bool
		workspaceDir   string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new Git identity profile",
		Long: `Create a profile: generate an SSH keypair, register a host alias in
the SSH config, and store the Git identity.

When --email is omitted for github or gitlab, the public profile of
--username is looked up and its public email (or the provider's noreply
address) is used.

Examples:
  # GitHub profile, email resolved from the public profile
  mgit add work --username octocat

  # Explicit identity against a self-hosted server
  mgit add corp --username jane --email jane@corp.example \
    --provider custom --custom-host git.corp.example

  # RSA key with a passphrase stored in the OS keyring
  mgit add legacy --username jane --email jane@example.com \
    --key-type rsa --save-passphrase`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if username == "" {
				username = name
			}

			ctx := context.Background()

			if email == "" {
				resolved, err := lookupEmail(ctx, cfg, provider, username)
				if err != nil {
					return err
				}
				email = resolved
			}

			pass := secure.Empty()
			if passphrase != "" {
				pass = secure.NewPassphrase([]byte(passphrase))
			} else if !cfg.NonInteractive {
				raw, err := promptPassphrase()
				if err != nil {
					return err
				}
				if len(raw) > 0 {
					pass = secure.NewPassphrase(raw)
				}
			}

			orch := newOrchestrator(cfg)
			_, err := orch.Add(ctx, profile.AddOptions{
				Name:           name,
				GitUsername:    username,
				GitEmail:       email,
				Provider:       account.Provider(provider),
				CustomHost:     customHost,
				KeyType:        keyType,
				Passphrase:     pass,
				SavePassphrase: savePassphrase,
				SigningKey:     signingKey,
				IsDefault:      isDefault,
				WorkspaceDir:   workspaceDir,
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Git username (default: profile name)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Git email (default: looked up from the provider)")
	cmd.Flags().StringVarP(&provider, "provider", "p", "github", "Hosting provider: github, gitlab, bitbucket, custom")
	cmd.Flags().StringVar(&customHost, "custom-host", "", "Host name for --provider custom")
	cmd.Flags().StringVarP(&keyType, "key-type", "t", "ed25519", "SSH key type: ed25519 or rsa")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "SSH key passphrase (prompted when omitted)")
	cmd.Flags().BoolVar(&savePassphrase, "save-passphrase", false, "Store the passphrase in the OS keyring")
	cmd.Flags().StringVar(&signingKey, "signing-key", "", "Commit signing key identifier")
	cmd.Flags().BoolVarP(&isDefault, "default", "d", false, "Make this the default profile")
	cmd.Flags().StringVarP(&workspaceDir, "workspace", "w", "", "Directory to bind to this profile via conditional include")

	return cmd
}

// lookupEmail resolves a missing email from the provider's public user API.
// A public email wins; otherwise the provider's noreply address is used.
func lookupEmail(ctx context.Context, cfg *config.Config, provider, username string) (string, error) {
	switch provider {
	case "github", "gitlab":
	default:
		return "", mgiterrors.ValidationError{
			Field:      "email",
			Message:    "email is required",
			Suggestion: "Pass --email; automatic lookup only works for github and gitlab",
		}
	}

	cfg.Logger.Info("Looking up %s user '%s'...", provider, username)
	info, err := hosting.NewClient().Lookup(ctx, provider, username)
	if err != nil {
		return "", err
	}
	if info.Email != "" {
		return info.Email, nil
	}
	noreply := hosting.NoreplyEmail(provider, info.Login, info.ID)
	cfg.Logger.Info("No public email; using %s", noreply)
	return noreply, nil
}
