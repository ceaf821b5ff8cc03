package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wukongd/wukong/internal/config"
	"github.com/wukongd/wukong/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wukong",
	Short: "Task classification and execution planning",
	Long: `Wukong classifies free-text work requests into execution tracks and
builds phased plans over a fixed vocabulary of worker nodes.

A zero-latency rule layer handles explicit markers and keyword matches;
ambiguous requests escalate to a language model planner. Plans, task
results, and context anchors persist locally so runs can be inspected
and aggregated later.

Core capabilities:
- Classifies tasks into feature, fix, refactor, research, or direct tracks
- Builds phase DAGs from per-track templates
- Enforces per-role concurrency ceilings by cost tier
- Aggregates node output under importance-ranked character budgets`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(anchorsCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the layered configuration.
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// openIndex opens the plan index at the configured path.
func openIndex(cfg *config.Config) (*store.DB, error) {
	path := cfg.Store.IndexPath
	if path == "" {
		path = filepath.Join(config.DefaultDataDir(), "wukong.db")
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openAnchorLog opens the anchor log at the configured path.
func openAnchorLog(cfg *config.Config) (*store.AnchorLog, error) {
	path := cfg.Store.AnchorsPath
	if path == "" {
		path = filepath.Join(config.DefaultDataDir(), "anchors.jsonl")
	}
	return store.NewAnchorLog(path)
}
