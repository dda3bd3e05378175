package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wardenhq/warden/internal/audit"
	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/executor"
	"github.com/wardenhq/warden/internal/policy"
	"github.com/wardenhq/warden/internal/tools"
)

// ToolName is the single externally exposed operation.
const ToolName = "run_safe_command"

func buildRuleset(cfg *config.Config) (*policy.Ruleset, error) {
	rules, err := policy.NewRuleset(policy.Config{
		AllowExtra: cfg.Policy.AllowExtra,
		DenyExtra:  cfg.Policy.DenyExtra,
	})
	if err != nil {
		return nil, fmt.Errorf("build policy ruleset: %w", err)
	}
	return rules, nil
}

// buildRegistry wires the policy ruleset, executor and audit writer into a
// tool registry exposing run_safe_command. The guard pins the registry to
// that single operation.
func buildRegistry(cfg *config.Config, echo bool) (*tools.Registry, error) {
	rules, err := buildRuleset(cfg)
	if err != nil {
		return nil, err
	}

	exec := executor.New(executor.Options{
		Timeout: time.Duration(cfg.Exec.TimeoutSeconds) * time.Second,
		Echo:    echo,
	})
	auditWriter := audit.NewWriter(cfg.WorkspacePath())

	execTool, err := tools.NewRunSafeCommandTool(rules, exec, auditWriter)
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", ToolName, err)
	}

	registry := tools.NewRegistry()
	if err := registry.Register(execTool); err != nil {
		return nil, err
	}
	registry.SetGuard(func(ctx context.Context, name, argsJSON string) (tools.GuardResult, error) {
		if name != ToolName {
			return tools.GuardResult{Action: tools.GuardDeny, Message: "tool is not exposed"}, nil
		}
		slog.Debug("tool invocation", "tool", name, "request_id", tools.InvocationFromContext(ctx).RequestID)
		return tools.GuardResult{Action: tools.GuardAllow}, nil
	})

	return registry, nil
}
