package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	opts := sessionOptions{}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replay an operation log against a working copy as an update",
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := runReplay(opts)
			if err != nil {
				return err
			}
			printSummary(printer)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", ".", "Working copy root on disk")
	cmd.Flags().StringVar(&opts.oplogPath, "oplog", "", "Path to the JSON-encoded operation log to replay")
	cmd.Flags().StringVar(&opts.target, "target", "", "Target basename within the anchor, empty for the anchor itself")
	cmd.Flags().StringVar(&opts.reposRoot, "repos-root", "https://example.com/repo", "Repository root URL this working copy tracks")
	cmd.Flags().StringVar(&opts.reposUUID, "repos-uuid", "00000000-0000-0000-0000-000000000000", "Repository UUID this working copy tracks")
	cmd.Flags().StringVar(&opts.depthFlag, "depth", "", "Override the configured update depth (empty, files, immediates, infinity)")
	cmd.Flags().BoolVar(&opts.stickyDepth, "sticky-depth", false, "Record the --depth override as sticky for this subtree")
	cmd.MarkFlagRequired("oplog")

	return cmd
}

func printSummary(printer *notificationPrinter) {
	fmt.Println()
	fmt.Println(renderHeader("Summary"))
	counts := printer.summarize()
	if len(counts) == 0 {
		fmt.Println(colorGray("no changes"))
		return
	}
	for _, action := range []string{"update_add", "update_update", "update_delete", "update_add_deleted", "update_obstruction", "skip", "tree_conflict", "exists"} {
		if n, ok := counts[action]; ok {
			fmt.Println(formatCount(action, n))
		}
	}
}
