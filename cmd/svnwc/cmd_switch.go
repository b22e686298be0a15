package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSwitchCmd() *cobra.Command {
	opts := sessionOptions{}

	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Replay an operation log against a working copy as a switch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.switchRelPath == "" {
				return fmt.Errorf("--switch-relpath is required for switch")
			}
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
	cmd.Flags().StringVar(&opts.switchURL, "url", "", "Destination URL the switch moves this subtree to (informational; --switch-relpath drives the session)")
	cmd.Flags().StringVar(&opts.switchRelPath, "switch-relpath", "", "Repository-relative path this subtree switches to")
	cmd.Flags().StringVar(&opts.depthFlag, "depth", "", "Override the configured update depth (empty, files, immediates, infinity)")
	cmd.Flags().BoolVar(&opts.stickyDepth, "sticky-depth", false, "Record the --depth override as sticky for this subtree")
	cmd.MarkFlagRequired("oplog")
	cmd.MarkFlagRequired("switch-relpath")

	return cmd
}
