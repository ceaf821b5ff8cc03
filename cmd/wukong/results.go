package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wukongd/wukong/internal/aggregate"
	"github.com/wukongd/wukong/pkg/models"
)

var (
	resultTaskID   string
	resultNode     string
	resultStatus   string
	resultOutput   string
	resultEvidence string
	resultMarks    []string

	showCompact bool
	showBudget  int
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Record and aggregate node results",
}

var resultsAddCmd = &cobra.Command{
	Use:   "add <plan-id>",
	Short: "Record one node result for a plan",
	Long: `Record the result of an executed node.

Marked content is passed as importance:category:content, for example:
  wukong results add tg_a1b2c3d4e5f6 --task t1 --node eye_explore \
    --status completed --mark "high:finding:handler panics on nil session"`,
	Args: cobra.ExactArgs(1),
	RunE: runResultsAdd,
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Aggregate the recorded results of a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsShow,
}

func init() {
	resultsAddCmd.Flags().StringVar(&resultTaskID, "task", "", "Task ID (required)")
	resultsAddCmd.Flags().StringVar(&resultNode, "node", "", "Node ID that produced the result (required)")
	resultsAddCmd.Flags().StringVar(&resultStatus, "status", "completed", "Result status")
	resultsAddCmd.Flags().StringVar(&resultOutput, "output", "", "Raw node output")
	resultsAddCmd.Flags().StringVar(&resultEvidence, "evidence", "", "Proof-of-work evidence")
	resultsAddCmd.Flags().StringArrayVar(&resultMarks, "mark", nil, "Marked content as importance:category:content (repeatable)")
	resultsAddCmd.MarkFlagRequired("task")
	resultsAddCmd.MarkFlagRequired("node")

	resultsShowCmd.Flags().BoolVar(&showCompact, "compact", false, "Show only the high-importance digest")
	resultsShowCmd.Flags().IntVar(&showBudget, "budget", 0, "Character budget (0 for the configured default)")

	resultsCmd.AddCommand(resultsAddCmd)
	resultsCmd.AddCommand(resultsShowCmd)
}

func runResultsAdd(cmd *cobra.Command, args []string) error {
	node := models.NodeID(resultNode)
	if !node.Valid() {
		return fmt.Errorf("unknown node %q, valid nodes: %v", resultNode, models.AllNodeIDs())
	}

	status := models.ResultStatus(resultStatus)
	if !status.Valid() {
		color.Yellow("warning: status %q is not a known status, recording as-is", resultStatus)
	}

	marked, err := parseMarks(resultMarks, resultNode)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.GetPlan(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("plan %s not found", args[0])
	}

	result := models.TaskResult{
		TaskID:      resultTaskID,
		Node:        node,
		Status:      status,
		Output:      resultOutput,
		MarkedItems: marked,
		Evidence:    resultEvidence,
	}
	if err := db.SaveResult(rec.Plan.ID, result); err != nil {
		return err
	}

	color.Green("recorded %s for %s (%s)", resultTaskID, rec.Plan.ID, status)
	return nil
}

func runResultsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.ListResults(args[0])
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No results recorded for this plan")
		return nil
	}

	agg := aggregate.New()
	for _, r := range results {
		agg.AddResult(r)
	}

	if showCompact {
		budget := showBudget
		if budget <= 0 {
			budget = cfg.Budgets.CompactSummary
		}
		fmt.Println(agg.CompactSummary(budget))
		return nil
	}

	budget := showBudget
	if budget <= 0 {
		budget = cfg.Budgets.Aggregate
	}
	fmt.Println(agg.Aggregate(budget))
	return nil
}

// parseMarks decodes importance:category:content flags.
func parseMarks(marks []string, source string) ([]models.MarkedContent, error) {
	if len(marks) == 0 {
		return nil, nil
	}

	items := make([]models.MarkedContent, 0, len(marks))
	for _, raw := range marks {
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("mark %q is not importance:category:content", raw)
		}
		importance := models.Importance(strings.ToLower(strings.TrimSpace(parts[0])))
		if !importance.Valid() {
			return nil, fmt.Errorf("mark %q has unknown importance %q", raw, parts[0])
		}
		items = append(items, models.MarkedContent{
			Content:    strings.TrimSpace(parts[2]),
			Importance: importance,
			Category:   strings.TrimSpace(parts[1]),
			Source:     source,
		})
	}
	return items, nil
}
