package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Exec.TimeoutSeconds != 30 {
		t.Errorf("expected TimeoutSeconds=30, got %d", cfg.Exec.TimeoutSeconds)
	}
	if cfg.Exec.Echo {
		t.Error("expected Echo=false by default")
	}
	if cfg.Gateway.Port != 18890 {
		t.Errorf("expected Port=18890, got %d", cfg.Gateway.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected Level=info, got %s", cfg.Log.Level)
	}
}

func TestLoadFrom_CreatesDefaultWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Exec.TimeoutSeconds != 30 {
		t.Fatalf("expected default timeout, got %d", cfg.Exec.TimeoutSeconds)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
}

func TestLoadFrom_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "exec": {"timeout_seconds": 5, "echo": true},
  "policy": {"allow_extra": ["terraform"], "deny_extra": ["\\bterraform\\s+destroy\\b"]},
  "gateway": {"host": "localhost", "port": 9000},
  "log": {"level": "DEBUG"}
}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Exec.TimeoutSeconds != 5 {
		t.Errorf("expected timeout 5, got %d", cfg.Exec.TimeoutSeconds)
	}
	if !cfg.Exec.Echo {
		t.Error("expected echo=true")
	}
	if len(cfg.Policy.AllowExtra) != 1 || cfg.Policy.AllowExtra[0] != "terraform" {
		t.Errorf("unexpected allow_extra: %v", cfg.Policy.AllowExtra)
	}
	if cfg.Gateway.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Gateway.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected normalized level debug, got %s", cfg.Log.Level)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative timeout", func(c *Config) { c.Exec.TimeoutSeconds = -1 }},
		{"bad port", func(c *Config) { c.Gateway.Port = 70000 }},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }},
		{"blank allow entry", func(c *Config) { c.Policy.AllowExtra = []string{" "} }},
		{"allow entry with args", func(c *Config) { c.Policy.AllowExtra = []string{"git push"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_NormalizesZeroTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exec.TimeoutSeconds = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if cfg.Exec.TimeoutSeconds != 30 {
		t.Fatalf("expected timeout normalized to 30, got %d", cfg.Exec.TimeoutSeconds)
	}
}

func TestWorkspacePath_TildeExpansion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workspace = "~/warden-ws"

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	if got, want := cfg.WorkspacePath(), filepath.Join(home, "warden-ws"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
