package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wukongd/wukong/internal/snapshot"
	"github.com/wukongd/wukong/internal/store"
)

var anchorMeta []string

var anchorsCmd = &cobra.Command{
	Use:   "anchors",
	Short: "Manage the context anchor log",
	Long: `Anchors are durable context facts (decisions, constraints, findings)
appended to a local JSONL log. Snapshots embed them so every dispatched
task sees the same context.`,
}

var anchorsAddCmd = &cobra.Command{
	Use:   "add <type> <content...>",
	Short: "Append an anchor to the log",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := parseMeta(anchorMeta)
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

		anchor := snapshot.Anchor{
			Type:     args[0],
			Content:  strings.Join(args[1:], " "),
			Metadata: meta,
		}
		if err := log.Append(anchor); err != nil {
			return err
		}
		color.Green("anchored [%s] %s", anchor.Type, anchor.Content)
		return nil
	},
}

var anchorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all anchors, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := openAnchorLog(cfg)
		if err != nil {
			return err
		}

		records, err := log.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No anchors recorded yet")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  [%s] %s\n", rec.RecordedAt.Format("2006-01-02 15:04"), rec.Type, rec.Content)
		}
		return nil
	},
}

var anchorsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the anchor log and print new anchors as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := openAnchorLog(cfg)
		if err != nil {
			return err
		}

		watcher, err := store.WatchAnchors(log)
		if err != nil {
			return err
		}
		defer watcher.Close()

		fmt.Printf("watching %s (ctrl+c to stop)\n", log.Path())

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case batch, ok := <-watcher.Updates():
				if !ok {
					return nil
				}
				for _, rec := range batch {
					fmt.Printf("%s  [%s] %s\n", rec.RecordedAt.Format("15:04:05"), rec.Type, rec.Content)
				}
			case <-sigs:
				return nil
			}
		}
	},
}

func init() {
	anchorsAddCmd.Flags().StringArrayVar(&anchorMeta, "meta", nil, "Metadata as key=value (repeatable)")

	anchorsCmd.AddCommand(anchorsAddCmd)
	anchorsCmd.AddCommand(anchorsListCmd)
	anchorsCmd.AddCommand(anchorsWatchCmd)
}

// parseMeta decodes key=value metadata flags.
func parseMeta(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("metadata %q is not key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}
