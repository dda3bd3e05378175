package commands

import (
	"github.com/spf13/cobra"

	"github.com/wardenhq/warden/internal/config"
)

var logLevelOverride string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warden",
		Short: "Warden - command-execution guard for LLM agents",
		Long:  `Warden screens shell commands proposed by an agent against an allowlist and a denylist of destructive patterns, and runs approved commands with a bounded lifetime.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "init" {
				return configureLogger(config.DefaultConfig(), logLevelOverride)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return configureLogger(cfg, logLevelOverride)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")

	cmd.AddCommand(
		NewInitCmd(),
		NewRunCmd(),
		NewCheckCmd(),
		NewServeCmd(),
		NewPolicyCmd(),
		NewVersionCmd(),
	)

	return cmd
}
