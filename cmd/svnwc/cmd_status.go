package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Dhanabal/svnwc/cmd/ui"
)

func newStatusCmd() *cobra.Command {
	opts := sessionOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Replay an operation log and render a notification summary table",
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := runReplay(opts)
			if err != nil {
				return err
			}
			renderStatusTable(printer)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", ".", "Working copy root on disk")
	cmd.Flags().StringVar(&opts.oplogPath, "oplog", "", "Path to the JSON-encoded operation log to replay")
	cmd.Flags().StringVar(&opts.target, "target", "", "Target basename within the anchor, empty for the anchor itself")
	cmd.Flags().StringVar(&opts.reposRoot, "repos-root", "https://example.com/repo", "Repository root URL this working copy tracks")
	cmd.Flags().StringVar(&opts.reposUUID, "repos-uuid", "00000000-0000-0000-0000-000000000000", "Repository UUID this working copy tracks")
	cmd.MarkFlagRequired("oplog")

	return cmd
}

func renderStatusTable(printer *notificationPrinter) {
	fmt.Println(renderHeader(" Update Notifications "))
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Action", "Path", "Revision")

	for _, n := range printer.notifications {
		table.Append(
			ui.RenderAction(notifyKindFor(n.Action), n.Action.String()),
			n.Path.String(),
			fmt.Sprintf("%d", n.Revision),
		)
	}

	table.Render()

	fmt.Println()
	fmt.Println(renderSection("Totals"))
	counts := printer.summarize()
	for action, n := range counts {
		fmt.Println(formatCount(action, n))
	}
}
