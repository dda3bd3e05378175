package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/tools"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var echo bool

	cmd := &cobra.Command{
		Use:   "run <command...>",
		Short: "Screen a command and execute it if allowed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if echo {
				cfg.Exec.Echo = true
			}

			registry, err := buildRegistry(cfg, cfg.Exec.Echo)
			if err != nil {
				return err
			}

			command := strings.Join(args, " ")
			argsJSON, err := json.Marshal(tools.RunCommandInput{Command: command})
			if err != nil {
				return err
			}

			ctx := tools.WithInvocationContext(cmd.Context(), tools.InvocationContext{
				Caller:    "cli",
				RequestID: uuid.NewString(),
			})
			raw, err := registry.Execute(ctx, ToolName, string(argsJSON))
			if err != nil {
				return err
			}

			var result tools.RunCommandOutput
			if err := json.Unmarshal([]byte(raw), &result); err != nil {
				return fmt.Errorf("unexpected tool result: %w", err)
			}

			if result.Output != "" {
				fmt.Println(result.Output)
			}
			if result.Stderr != "" {
				fmt.Fprintln(os.Stderr, result.Stderr)
			}
			if result.Error != "" {
				return fmt.Errorf("%s", result.Error)
			}
			if result.ExitCode != 0 {
				return &ExitError{Code: result.ExitCode}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&echo, "echo", false, "Mirror command output as it arrives")

	return cmd
}
