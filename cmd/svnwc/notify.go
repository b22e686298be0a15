package main

import (
	"fmt"
	"os"

	"github.com/Dhanabal/svnwc/cmd/ui"
	"github.com/Dhanabal/svnwc/pkg/editor"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

// notificationPrinter accumulates every notification a replay produces,
// printing each one as it arrives and keeping enough of a tally for the
// status command's summary table. A tree conflict gets an extra
// detailed box, read back from the node the driver just stamped.
type notificationPrinter struct {
	notifications []editor.Notification
	store         wcdb.Store
}

func (p *notificationPrinter) handle(n editor.Notification) {
	p.notifications = append(p.notifications, n)
	fmt.Fprintln(os.Stdout, ui.FormatNotification(notifyKindFor(n.Action), n.Action.String(), n.Path.String()))

	if n.Action == editor.NotifyTreeConflict {
		p.printConflictDetail(n)
	}
}

func (p *notificationPrinter) printConflictDetail(n editor.Notification) {
	if p.store == nil {
		return
	}
	node, err := p.store.ReadNode(n.Path)
	if err != nil || node == nil || node.Actual == nil || node.Actual.TreeConflict == nil {
		return
	}
	tc := node.Actual.TreeConflict

	left := "(none)"
	if tc.SourceLeft != nil {
		left = fmt.Sprintf("%s@%d", tc.SourceLeft.ReposRelPath.String(), tc.SourceLeft.Revision)
	}
	right := fmt.Sprintf("%s@%d", tc.SourceRight.ReposRelPath.String(), tc.SourceRight.Revision)

	fmt.Fprintln(os.Stdout, ui.FormatConflictDetailed(ui.ConflictInfo{
		Path:        n.Path.String(),
		Reason:      tc.Reason.String(),
		SourceLeft:  left,
		SourceRight: right,
	}))
}

func notifyKindFor(action editor.NotifyAction) ui.NotifyKind {
	switch action {
	case editor.NotifyUpdateAdd, editor.NotifyUpdateAddDeleted:
		return ui.NotifyAdd
	case editor.NotifyUpdateUpdate, editor.NotifyExists:
		return ui.NotifyUpdate
	case editor.NotifyUpdateDelete:
		return ui.NotifyDelete
	case editor.NotifyTreeConflict:
		return ui.NotifyConflict
	default:
		return ui.NotifySkip
	}
}

// summarize tallies the accumulated notifications by action, for the
// final report a command prints once a replay completes.
func (p *notificationPrinter) summarize() map[string]int {
	counts := make(map[string]int)
	for _, n := range p.notifications {
		counts[n.Action.String()]++
	}
	return counts
}
