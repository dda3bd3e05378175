package tools

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/wardenhq/warden/internal/audit"
	"github.com/wardenhq/warden/internal/executor"
	"github.com/wardenhq/warden/internal/policy"
)

// BlockedMessage is the uniform error reported for policy rejections.
const BlockedMessage = "Command blocked by safety filters"

// RunCommandInput parameters for the run_safe_command tool.
type RunCommandInput struct {
	Command string `json:"command" jsonschema:"required,description=Shell command to execute"`
}

// RunCommandOutput is the uniform result shape returned to the caller. All
// failure kinds collapse into this shape; no error crosses the tool boundary
// for policy rejections, timeouts, spawn failures, or non-zero exits.
type RunCommandOutput struct {
	Success  bool   `json:"success"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output"`
	Stderr   string `json:"stderr"`
	Command  string `json:"command"`
	Error    string `json:"error,omitempty"`
}

type safeCommandImpl struct {
	rules *policy.Ruleset
	exec  *executor.Executor
	audit *audit.Writer
}

func (t *safeCommandImpl) execute(ctx context.Context, input *RunCommandInput) (*RunCommandOutput, error) {
	verdict := t.rules.Evaluate(input.Command)
	if !verdict.Allowed() {
		slog.Info("command blocked", "command", input.Command, "reason", verdict.Reason)
		t.appendAudit(ctx, audit.TypePolicyBlock, input.Command, verdict.Reason)
		return &RunCommandOutput{
			Success: false,
			Command: input.Command,
			Stderr:  verdict.Reason,
			Error:   BlockedMessage,
		}, nil
	}
	t.appendAudit(ctx, audit.TypePolicyAllow, input.Command, string(verdict.Action))

	slog.Debug("executing command", "command", input.Command)
	result, err := t.exec.Run(ctx, input.Command)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, executor.ErrTimeout) {
			slog.Warn("command timed out", "command", input.Command, "timeout", t.exec.Timeout())
		}
		t.appendAudit(ctx, audit.TypeExecError, input.Command, msg)
		return &RunCommandOutput{
			Success: false,
			Command: input.Command,
			Stderr:  msg,
			Error:   msg,
		}, nil
	}

	slog.Debug("command finished", "command", input.Command, "exit_code", result.ExitCode, "duration", result.Duration.String())
	t.appendAudit(ctx, audit.TypeExecFinish, input.Command, exitStatus(result.ExitCode))

	return &RunCommandOutput{
		Success:  result.ExitCode == 0,
		ExitCode: result.ExitCode,
		Output:   result.Stdout,
		Stderr:   result.Stderr,
		Command:  input.Command,
	}, nil
}

func (t *safeCommandImpl) appendAudit(ctx context.Context, eventType, command, result string) {
	if t.audit == nil {
		return
	}
	event := audit.Event{
		Time:      time.Now().UTC(),
		Type:      eventType,
		RequestID: InvocationFromContext(ctx).RequestID,
		Command:   command,
		Result:    result,
	}
	if err := t.audit.Append(event); err != nil {
		slog.Warn("failed to append audit event", "type", event.Type, "error", err)
	}
}

func exitStatus(code int) string {
	if code == 0 {
		return "success"
	}
	return "exit " + strconv.Itoa(code)
}

// NewRunSafeCommandTool creates the run_safe_command tool composing the
// policy ruleset and the process executor. The audit writer may be nil.
func NewRunSafeCommandTool(rules *policy.Ruleset, exec *executor.Executor, auditWriter *audit.Writer) (tool.InvokableTool, error) {
	impl := &safeCommandImpl{
		rules: rules,
		exec:  exec,
		audit: auditWriter,
	}
	return utils.InferTool("run_safe_command", "Execute a shell command after safety screening", impl.execute)
}
