package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config root configuration
type Config struct {
	Workspace string        `mapstructure:"workspace"`
	Exec      ExecConfig    `mapstructure:"exec"`
	Policy    PolicyConfig  `mapstructure:"policy"`
	Gateway   GatewayConfig `mapstructure:"gateway"`
	Log       LogConfig     `mapstructure:"log"`
}

// ExecConfig process executor settings
type ExecConfig struct {
	TimeoutSeconds int  `mapstructure:"timeout_seconds"`
	Echo           bool `mapstructure:"echo"`
}

// PolicyConfig ruleset extensions on top of the built-in lists
type PolicyConfig struct {
	AllowExtra []string `mapstructure:"allow_extra"`
	DenyExtra  []string `mapstructure:"deny_extra"`
}

// GatewayConfig server settings
type GatewayConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Token string `mapstructure:"token"`
}

// LogConfig application logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultConfig returns config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Workspace: filepath.Join(ConfigDir(), "workspace"),
		Exec: ExecConfig{
			TimeoutSeconds: 30,
			Echo:           false,
		},
		Policy: PolicyConfig{
			AllowExtra: []string{},
			DenyExtra:  []string{},
		},
		Gateway: GatewayConfig{
			Host:  "127.0.0.1",
			Port:  18890,
			Token: "",
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// ConfigDir returns the warden config directory
func ConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".warden")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads config from file or returns defaults
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads config from an explicit path, creating it with defaults
// when absent.
func LoadFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(cfg, configPath); err != nil {
			return cfg, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("WARDEN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}

	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.MatchName = func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		}
	}); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func normalizeKey(input string) string {
	input = strings.ReplaceAll(input, "_", "")
	input = strings.ReplaceAll(input, "-", "")
	return strings.ToLower(input)
}

// Save saves config to the default path
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo saves config to an explicit path
func SaveTo(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// Validate checks that the configuration values are within acceptable
// ranges and normalizes defaults in place.
func (c *Config) Validate() error {
	if c.Exec.TimeoutSeconds < 0 {
		return fmt.Errorf("exec.timeout_seconds must not be negative, got %d", c.Exec.TimeoutSeconds)
	}
	if c.Exec.TimeoutSeconds == 0 {
		c.Exec.TimeoutSeconds = 30
	}

	if c.Gateway.Port <= 0 || c.Gateway.Port > 65535 {
		return fmt.Errorf("gateway.port must be between 1 and 65535, got %d", c.Gateway.Port)
	}

	for _, base := range c.Policy.AllowExtra {
		if strings.TrimSpace(base) == "" {
			return fmt.Errorf("policy.allow_extra must not contain blank entries")
		}
		if strings.ContainsAny(base, " \t") {
			return fmt.Errorf("policy.allow_extra entries must be single base commands, got %q", base)
		}
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if level == "" {
		c.Log.Level = "info"
	} else {
		validLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[level] {
			return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
		}
		c.Log.Level = level
	}

	if strings.TrimSpace(c.Workspace) == "" {
		c.Workspace = filepath.Join(ConfigDir(), "workspace")
	}

	return nil
}

// WorkspacePath returns the expanded workspace path
func (c *Config) WorkspacePath() string {
	ws := strings.TrimSpace(c.Workspace)
	if ws == "" {
		return filepath.Join(ConfigDir(), "workspace")
	}
	if ws[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(ConfigDir(), "workspace")
		}
		rest := strings.TrimPrefix(ws[1:], string(filepath.Separator))
		rest = strings.TrimPrefix(rest, "/")
		return filepath.Join(homeDir, rest)
	}
	return ws
}
