package commands

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wardenhq/warden/internal/config"
)

// NewPolicyCmd creates the policy command
func NewPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect the effective command policy",
	}

	cmd.AddCommand(newPolicyListCmd())

	return cmd
}

func newPolicyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the effective allowlist and denylist",
		RunE:  runPolicyList,
	}
}

func runPolicyList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rules, err := buildRuleset(cfg)
	if err != nil {
		return err
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#8E4EC6")). // Purple
		Padding(0, 1).
		Bold(true)
	entryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	allow := rules.Allowlist()
	sort.Strings(allow)

	fmt.Println(headerStyle.Render(fmt.Sprintf("Allowlist (%d base commands)", len(allow))))
	for _, base := range allow {
		fmt.Println(entryStyle.Render("  " + base))
	}

	deny := rules.Denylist()
	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Denylist (%d patterns)", len(deny))))
	for _, pattern := range deny {
		fmt.Println(entryStyle.Render("  " + pattern))
	}

	return nil
}
