package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wukongd/wukong/internal/render"
	"github.com/wukongd/wukong/internal/tui"
	"github.com/wukongd/wukong/pkg/models"
)

var (
	planListLimit   int
	planShowMermaid bool
	planShowJSON    bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Inspect recorded plans",
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded plans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.ListPlans(planListLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No plans recorded yet")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  %-8s  %-7s  %.2f  %s\n",
				rec.Plan.ID, rec.Plan.Track, rec.Plan.Complexity, rec.Plan.Confidence, rec.Task)
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show one plan with its recorded node statuses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		results, err := db.ListResults(rec.Plan.ID)
		if err != nil {
			return err
		}
		statuses := make(map[models.NodeID]models.ResultStatus, len(results))
		for _, r := range results {
			statuses[r.Node] = r.Status
		}

		switch {
		case planShowJSON:
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		case planShowMermaid:
			fmt.Println(render.MermaidFenced(rec.Plan, statuses))
		default:
			fmt.Print(render.New().Plan(rec.Plan, statuses))
			fmt.Println(render.CompactLine(rec.Plan, statuses))
		}
		return nil
	},
}

var planInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Browse recorded plans interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.ListPlans(0)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			color.Yellow("No plans recorded yet")
			return nil
		}

		results := make(map[string][]models.TaskResult, len(records))
		for _, rec := range records {
			rs, err := db.ListResults(rec.Plan.ID)
			if err != nil {
				return err
			}
			results[rec.Plan.ID] = rs
		}

		return tui.Run(records, results)
	},
}

func init() {
	planListCmd.Flags().IntVar(&planListLimit, "limit", 20, "Maximum number of plans to list (0 for all)")
	planShowCmd.Flags().BoolVar(&planShowMermaid, "mermaid", false, "Render the plan as a Mermaid graph")
	planShowCmd.Flags().BoolVar(&planShowJSON, "json", false, "Print the plan record as JSON")

	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planInspectCmd)
}
