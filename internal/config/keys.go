package config

import (
	"errors"
	"os"
	"strings"
)

// ErrNoAPIKey is returned when no API key is configured anywhere the
// planner could find one.
var ErrNoAPIKey = errors.New("no Anthropic API key configured")

// KeySource reports where an API key was resolved from.
type KeySource string

const (
	KeySourceEnv    KeySource = "environment"
	KeySourceConfig KeySource = "config_file"
	KeySourceNone   KeySource = "none"
)

// ResolveAPIKey returns the Anthropic API key and where it came from.
// The environment variable wins over the config file. A config value
// holding an unexpanded ${VAR} reference counts as unset.
func ResolveAPIKey(cfg *Config) (string, KeySource, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, KeySourceEnv, nil
	}

	if cfg != nil && cfg.Anthropic.APIKey != "" {
		key := os.ExpandEnv(cfg.Anthropic.APIKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return key, KeySourceConfig, nil
		}
	}

	return "", KeySourceNone, ErrNoAPIKey
}

// ValidateAPIKey checks the key's shape without calling the API.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrNoAPIKey
	}
	if !strings.HasPrefix(key, "sk-ant-") {
		return errors.New("invalid API key format: expected 'sk-ant-' prefix")
	}
	if len(key) < 20 {
		return errors.New("invalid API key format: key too short")
	}
	return nil
}

// MaskAPIKey returns a display-safe version of the key, keeping the
// "sk-ant-" prefix and the last four characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 15 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}
