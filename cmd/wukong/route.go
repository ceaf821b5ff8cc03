package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wukongd/wukong/internal/config"
	"github.com/wukongd/wukong/internal/render"
	"github.com/wukongd/wukong/internal/router"
	"github.com/wukongd/wukong/internal/store"
)

var (
	routeJSON   bool
	routeNoLLM  bool
	routeNoSave bool
)

var routeCmd = &cobra.Command{
	Use:   "route <task...>",
	Short: "Classify a task and build its execution plan",
	Long: `Classify a task into a track and build its phased plan.

The rule layer runs first: explicit @agent markers, /schedule and
track: directives, then keyword tables. When the rule layer is not
confident and a planner is configured, the task escalates to the
language model. The resulting plan is validated and saved to the local
index.

Examples:
  wukong route fix the login crash
  wukong route "@eye explore the session module"
  wukong route --json add dark mode support
  wukong route --no-llm investigate flaky tests`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "Print the plan as JSON")
	routeCmd.Flags().BoolVar(&routeNoLLM, "no-llm", false, "Never escalate to the language model planner")
	routeCmd.Flags().BoolVar(&routeNoSave, "no-save", false, "Do not record the plan in the index")
}

func runRoute(cmd *cobra.Command, args []string) error {
	task := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	r, err := buildRouter(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	result, err := r.Route(ctx, task)
	if err != nil {
		return err
	}

	if !routeNoSave {
		if err := savePlan(cfg, task, result); err != nil {
			color.Yellow("warning: plan not saved: %v", err)
		}
	}

	if routeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.FallbackReason != "" {
		color.Yellow("planner unavailable, using direct fallback: %s", result.FallbackReason)
	}
	for _, w := range result.Warnings {
		color.Yellow("warning: %s", w)
	}

	fmt.Print(render.New().Plan(result.Plan, nil))
	return nil
}

// buildRouter assembles the router from config: keyword overrides,
// threshold, debug logging, and the planner when enabled and a key is
// available.
func buildRouter(cfg *config.Config) (*router.Router, error) {
	opts := []router.Option{}

	if cfg.Router.Threshold > 0 {
		opts = append(opts, router.WithThreshold(cfg.Router.Threshold))
	}

	if cfg.Router.RulesFile != "" {
		overrides, err := config.LoadKeywordRules(cfg.Router.RulesFile)
		if err != nil {
			return nil, err
		}
		keywords := router.DefaultTrackKeywords()
		for track, words := range overrides {
			keywords[track] = words
		}
		opts = append(opts, router.WithKeywords(keywords))
	}

	if cfg.Debug.Enabled {
		logDir := cfg.Debug.LogDir
		if logDir == "" {
			logDir = filepath.Join(config.DefaultDataDir(), "logs")
		}
		logPath := filepath.Join(logDir, "router.log")
		logger, err := router.NewDebugLogger(logPath)
		if err != nil {
			color.Yellow("warning: debug log unavailable: %v", err)
		} else {
			opts = append(opts, router.WithLogger(logger))
		}
	}

	if !routeNoLLM && !cfg.Router.DisableLLM {
		if classifier := buildClassifier(cfg); classifier != nil {
			opts = append(opts, router.WithClassifier(classifier))
		}
	}

	return router.New(opts...), nil
}

// buildClassifier creates the language model planner, or nil when no
// credentials are available. Routing works without it; low-confidence
// classifications just keep the rule layer's guess.
func buildClassifier(cfg *config.Config) router.Classifier {
	llmCfg := router.LLMClassifierConfig{
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	}
	if cfg.Anthropic.Model != "" {
		llmCfg.Model = anthropic.Model(cfg.Anthropic.Model)
	}

	if !cfg.Anthropic.UseBedrock {
		key, _, err := config.ResolveAPIKey(cfg)
		if err != nil {
			return nil
		}
		llmCfg.APIKey = key
	}

	classifier, err := router.NewLLMClassifier(llmCfg)
	if err != nil {
		return nil
	}
	return classifier
}

// savePlan records the routed plan in the index.
func savePlan(cfg *config.Config, task string, result *router.RouteResult) error {
	db, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.SavePlan(&store.PlanRecord{
		Plan:      result.Plan,
		Task:      task,
		Escalated: result.Escalated,
		CreatedAt: time.Now(),
	})
}
