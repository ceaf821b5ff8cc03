package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wukongd/wukong/internal/snapshot"
)

var (
	snapshotSession string
	snapshotTask    string
	snapshotMeta    []string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <compact-context...>",
	Short: "Build a context snapshot and format it for a task",
	Long: `Build an immutable context snapshot from the given compact context
and every anchor in the log, then print it formatted for a task.

The compact context is capped at the configured budgets.compact_context
characters (500 by default); longer input is rejected rather than
truncated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := parseMeta(snapshotMeta)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := openAnchorLog(cfg)
		if err != nil {
			return err
		}
		anchors, err := log.Anchors()
		if err != nil {
			return err
		}

		snap, err := snapshot.NewWithBudget(snapshotSession, strings.Join(args, " "), anchors, meta, cfg.Budgets.CompactContext)
		if err != nil {
			var oversize *snapshot.OversizeContextError
			if errors.As(err, &oversize) {
				color.Red("compact context is %d chars, the limit is %d", oversize.Length, oversize.Limit)
			}
			return err
		}

		fmt.Println(snap.FormatForTask(snapshotTask))
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotSession, "session", "local", "Session ID to stamp on the snapshot")
	snapshotCmd.Flags().StringVar(&snapshotTask, "task", "preview", "Task ID to format the snapshot for")
	snapshotCmd.Flags().StringArrayVar(&snapshotMeta, "meta", nil, "Metadata as key=value (repeatable)")
}
