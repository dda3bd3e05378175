package commands

import (
	"context"
	"log/slog"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/tools"
)

func TestNewRootCmd_HasSubcommands(t *testing.T) {
	root := NewRootCmd()

	expected := []string{"init", "run", "check", "serve", "policy", "version"}
	for _, name := range expected {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q", name)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		configLevel string
		override    string
		want        slog.Level
		wantErr     bool
	}{
		{"", "", slog.LevelInfo, false},
		{"info", "", slog.LevelInfo, false},
		{"debug", "", slog.LevelDebug, false},
		{"warn", "", slog.LevelWarn, false},
		{"warning", "", slog.LevelWarn, false},
		{"error", "", slog.LevelError, false},
		{"info", "debug", slog.LevelDebug, false},
		{"bogus", "", 0, true},
	}

	for _, tc := range cases {
		got, err := parseLogLevel(tc.configLevel, tc.override)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseLogLevel(%q, %q): expected error", tc.configLevel, tc.override)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLogLevel(%q, %q): %v", tc.configLevel, tc.override, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseLogLevel(%q, %q) = %v, want %v", tc.configLevel, tc.override, got, tc.want)
		}
	}
}

func TestExitError_Message(t *testing.T) {
	err := &ExitError{Code: 3}
	if err.Error() != "command exited with code 3" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestBuildRegistry_ExposesOnlyRunSafeCommand(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workspace = t.TempDir()

	registry, err := buildRegistry(cfg, false)
	if err != nil {
		t.Fatalf("buildRegistry error: %v", err)
	}

	names := registry.Names()
	if len(names) != 1 || names[0] != ToolName {
		t.Fatalf("expected only %s, got %v", ToolName, names)
	}

	// The guard denies anything but the exposed tool even if registered
	// later.
	if err := registry.Register(&stubTool{}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := registry.Execute(context.Background(), "stub_tool", `{}`); err == nil {
		t.Fatal("expected guard to deny undeclared tool")
	}
}

func TestBuildRegistry_InvalidDenyPattern(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workspace = t.TempDir()
	cfg.Policy.DenyExtra = []string{"("}

	if _, err := buildRegistry(cfg, false); err == nil {
		t.Fatal("expected error for invalid deny pattern")
	}
}

type stubTool struct{}

func (s *stubTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{Name: "stub_tool", Desc: "stub"}, nil
}

func (s *stubTool) InvokableRun(ctx context.Context, args string, opts ...tool.Option) (string, error) {
	return "stub ran", nil
}

var _ tools.Tool = (*stubTool)(nil)
