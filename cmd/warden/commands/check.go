package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wardenhq/warden/internal/config"
)

var (
	allowedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")). // Green
			Padding(0, 1).
			Bold(true)

	blockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#C62828")). // Red
			Padding(0, 1).
			Bold(true)

	reasonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <command...>",
		Short: "Evaluate a command against the policy without executing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			rules, err := buildRuleset(cfg)
			if err != nil {
				return err
			}

			command := strings.Join(args, " ")
			verdict := rules.Evaluate(command)

			if verdict.Allowed() {
				fmt.Printf("%s %s\n", allowedStyle.Render("ALLOWED"), command)
				return nil
			}

			fmt.Printf("%s %s\n", blockedStyle.Render("BLOCKED"), command)
			fmt.Println(reasonStyle.Render("reason: " + verdict.Reason))
			if verdict.Pattern != "" {
				fmt.Println(reasonStyle.Render("pattern: " + verdict.Pattern))
			}
			return nil
		},
	}
}
