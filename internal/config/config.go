// Package config handles configuration loading and management for
// wukong. It supports XDG config paths, project-level overrides, and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for wukong.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Router    RouterConfig    `mapstructure:"router"`
	Budgets   BudgetsConfig   `mapstructure:"budgets"`
	Store     StoreConfig     `mapstructure:"store"`
	Debug     DebugConfig     `mapstructure:"debug"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
	// UseBedrock routes classification calls through AWS Bedrock.
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// RouterConfig holds classification settings.
type RouterConfig struct {
	// Threshold is the rule-layer confidence below which the language
	// model planner is consulted.
	Threshold float64 `mapstructure:"threshold"`
	// RulesFile optionally points to a YAML file with keyword table
	// overrides.
	RulesFile string `mapstructure:"rules_file"`
	// DisableLLM turns off planner escalation entirely.
	DisableLLM bool `mapstructure:"disable_llm"`
}

// BudgetsConfig holds character budgets for context and aggregation.
type BudgetsConfig struct {
	// CompactContext caps the compact context of a snapshot.
	CompactContext int `mapstructure:"compact_context"`
	// Aggregate caps the full aggregated output.
	Aggregate int `mapstructure:"aggregate"`
	// CompactSummary caps the high-importance digest.
	CompactSummary int `mapstructure:"compact_summary"`
}

// StoreConfig holds persistence paths.
type StoreConfig struct {
	// AnchorsPath is the JSONL anchor log path. Empty selects the
	// data directory default.
	AnchorsPath string `mapstructure:"anchors_path"`
	// IndexPath is the SQLite session index path. Empty selects the
	// data directory default.
	IndexPath string `mapstructure:"index_path"`
}

// DebugConfig holds debug logging settings.
type DebugConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	LogDir  string `mapstructure:"log_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Built-in defaults always unmarshal.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
//  1. Environment variables (ANTHROPIC_API_KEY)
//  2. Project config (.wukong.yaml in current directory or parent)
//  3. User config (~/.config/wukong/config.yaml)
//  4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("anthropic.aws_region", "AWS_REGION")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("router.threshold", cfg.Router.Threshold)
	v.Set("router.rules_file", cfg.Router.RulesFile)
	v.Set("router.disable_llm", cfg.Router.DisableLLM)
	v.Set("budgets.compact_context", cfg.Budgets.CompactContext)
	v.Set("budgets.aggregate", cfg.Budgets.Aggregate)
	v.Set("budgets.compact_summary", cfg.Budgets.CompactSummary)
	v.Set("store.anchors_path", cfg.Store.AnchorsPath)
	v.Set("store.index_path", cfg.Store.IndexPath)
	v.Set("debug.enabled", cfg.Debug.Enabled)
	v.Set("debug.log_dir", cfg.Debug.LogDir)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if
// it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// DefaultDataDir returns the XDG data directory for wukong.
func DefaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "wukong")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "share", "wukong")
	}
	return filepath.Join(home, ".local", "share", "wukong")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_bedrock", false)

	v.SetDefault("router.threshold", 0.7)
	v.SetDefault("router.rules_file", "")
	v.SetDefault("router.disable_llm", false)

	v.SetDefault("budgets.compact_context", 500)
	v.SetDefault("budgets.aggregate", 2000)
	v.SetDefault("budgets.compact_summary", 500)

	v.SetDefault("store.anchors_path", "")
	v.SetDefault("store.index_path", "")

	v.SetDefault("debug.enabled", false)
	v.SetDefault("debug.log_dir", "")
}

// getUserConfigDir returns the XDG config directory for wukong.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "wukong")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "wukong")
	}
	return filepath.Join(home, ".config", "wukong")
}

// findProjectConfig searches for .wukong.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".wukong.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a config value. A reference
// that expands to nothing is left alone so the caller can report it.
func expandEnv(value string) string {
	if !strings.Contains(value, "${") {
		return value
	}
	expanded := os.ExpandEnv(value)
	if expanded == "" {
		return value
	}
	return expanded
}
