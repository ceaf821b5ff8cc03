package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wukongd/wukong/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify wukong configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/wukong/config.yaml
Project-specific overrides can be placed in .wukong.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("anthropic.api_key: %s\n", config.MaskAPIKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", orUnset(cfg.Anthropic.Model))
	fmt.Printf("anthropic.use_bedrock: %t\n", cfg.Anthropic.UseBedrock)
	fmt.Printf("anthropic.aws_region: %s\n", orUnset(cfg.Anthropic.AWSRegion))
	fmt.Printf("router.threshold: %g\n", cfg.Router.Threshold)
	fmt.Printf("router.rules_file: %s\n", orUnset(cfg.Router.RulesFile))
	fmt.Printf("router.disable_llm: %t\n", cfg.Router.DisableLLM)
	fmt.Printf("budgets.compact_context: %d\n", cfg.Budgets.CompactContext)
	fmt.Printf("budgets.aggregate: %d\n", cfg.Budgets.Aggregate)
	fmt.Printf("budgets.compact_summary: %d\n", cfg.Budgets.CompactSummary)
	fmt.Printf("store.anchors_path: %s\n", orUnset(cfg.Store.AnchorsPath))
	fmt.Printf("store.index_path: %s\n", orUnset(cfg.Store.IndexPath))
	fmt.Printf("debug.enabled: %t\n", cfg.Debug.Enabled)
	fmt.Printf("debug.log_dir: %s\n", orUnset(cfg.Debug.LogDir))
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		return config.MaskAPIKey(cfg.Anthropic.APIKey), nil
	case "anthropic.model":
		return orUnset(cfg.Anthropic.Model), nil
	case "anthropic.use_bedrock":
		return strconv.FormatBool(cfg.Anthropic.UseBedrock), nil
	case "anthropic.aws_region":
		return orUnset(cfg.Anthropic.AWSRegion), nil
	case "anthropic.aws_profile":
		return orUnset(cfg.Anthropic.AWSProfile), nil
	case "router.threshold":
		return strconv.FormatFloat(cfg.Router.Threshold, 'g', -1, 64), nil
	case "router.rules_file":
		return orUnset(cfg.Router.RulesFile), nil
	case "router.disable_llm":
		return strconv.FormatBool(cfg.Router.DisableLLM), nil
	case "budgets.compact_context":
		return strconv.Itoa(cfg.Budgets.CompactContext), nil
	case "budgets.aggregate":
		return strconv.Itoa(cfg.Budgets.Aggregate), nil
	case "budgets.compact_summary":
		return strconv.Itoa(cfg.Budgets.CompactSummary), nil
	case "store.anchors_path":
		return orUnset(cfg.Store.AnchorsPath), nil
	case "store.index_path":
		return orUnset(cfg.Store.IndexPath), nil
	case "debug.enabled":
		return strconv.FormatBool(cfg.Debug.Enabled), nil
	case "debug.log_dir":
		return orUnset(cfg.Debug.LogDir), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "anthropic.use_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		cfg.Anthropic.UseBedrock = b
	case "anthropic.aws_region":
		cfg.Anthropic.AWSRegion = value
	case "anthropic.aws_profile":
		cfg.Anthropic.AWSProfile = value
	case "router.threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("threshold must be a number between 0 and 1: %s", value)
		}
		cfg.Router.Threshold = f
	case "router.rules_file":
		cfg.Router.RulesFile = value
	case "router.disable_llm":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		cfg.Router.DisableLLM = b
	case "budgets.compact_context", "budgets.aggregate", "budgets.compact_summary":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("budget must be a positive integer: %s", value)
		}
		switch strings.ToLower(key) {
		case "budgets.compact_context":
			cfg.Budgets.CompactContext = n
		case "budgets.aggregate":
			cfg.Budgets.Aggregate = n
		default:
			cfg.Budgets.CompactSummary = n
		}
	case "store.anchors_path":
		cfg.Store.AnchorsPath = value
	case "store.index_path":
		cfg.Store.IndexPath = value
	case "debug.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		cfg.Debug.Enabled = b
	case "debug.log_dir":
		cfg.Debug.LogDir = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
