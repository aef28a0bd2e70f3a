package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PrajsRamteke/mgit/internal/config"
	"github.com/PrajsRamteke/mgit/pkg/exec"
)

func NewInfoCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Check required tools and show mgit state",
		Long: `Verify that the external tools mgit shells out to are installed and
report where profiles and keys live.

Checks:
- git, ssh, ssh-keygen, ssh-add on PATH
- account store path and profile count
- SSH config path and managed key pairs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			healthy := true

			for _, tool := range []string{"git", "ssh", "ssh-keygen", "ssh-add"} {
				version, err := toolVersion(ctx, cfg.Runner, tool)
				switch {
				case err == nil:
					cfg.Logger.Success("%s: %s", tool, version)
				case exec.IsNotInstalled(err):
					cfg.Logger.Error("%s: not found on PATH", tool)
					healthy = false
				default:
					// Present but unhappy about the probe flags. Good enough.
					cfg.Logger.Success("%s: installed", tool)
				}
			}

			orch := newOrchestrator(cfg)
			cfg.Logger.Plain("")
			cfg.Logger.Info("Account store: %s (%d profiles)", cfg.StorePath(), len(orch.List()))
			cfg.Logger.Info("SSH config:    %s", cfg.SSHConfigPath())

			keys, err := orch.ListKeys()
			if err != nil {
				cfg.Logger.Warn("could not list SSH keys: %v", err)
			} else {
				cfg.Logger.Info("Managed keys:  %d", len(keys))
			}

			if !healthy {
				cfg.Logger.Plain("")
				cfg.Logger.Warn("Some required tools are missing; mgit commands will fail until they are installed.")
			}
			return nil
		},
	}

	return cmd
}

// toolVersion probes a tool with its version flag. ssh has no --version
// and prints its banner on stderr with exit status 255, so treat any
// startable process as installed.
func toolVersion(ctx context.Context, runner exec.CommandExecutor, tool string) (string, error) {
	flag := "--version"
	if tool == "ssh" {
		flag = "-V"
	}
	stdout, stderr, err := runner.Execute(ctx, tool, flag)
	out := strings.TrimSpace(string(stdout))
	if out == "" {
		out = strings.TrimSpace(string(stderr))
	}
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	if out == "" {
		out = "installed"
	}
	return out, err
}
