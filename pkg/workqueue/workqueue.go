// Package workqueue implements the per-directory deferred-work discipline
// (spec §4.5 / §9 "Deferred work"): an ordered, durable list of tagged
// filesystem operations that the edit driver appends to during a node's
// processing and runs at controlled points (node close, directory bump).
// Built around the same atomic-execution-with-rollback-on-failure shape
// a checkout transaction uses, adapted from "rollback on failure" to
// "leave the remainder queued for replay".
package workqueue

import (
	"fmt"

	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
)

// Kind is the tag on a deferred work item.
type Kind int

const (
	// InstallFile moves or copies a materialized file into place in the
	// working copy, from either the pristine store (by SHA1) or a named
	// temporary.
	InstallFile Kind = iota
	// Move renames a file within the working copy (used to keep a locally
	// modified node's content as "<path>.preserved" when an incoming
	// delete tree-conflicts with it).
	Move
	// Remove deletes a file (a stale not-present/absent entry, or a
	// temporary once it is no longer needed).
	Remove
	// SetMtime records a specific mtime on a working file (use_commit_times).
	SetMtime
	// RecordFileInfo is queued after a file's new text is installed. The
	// file runner takes no action for it: no mtime/size snapshot is
	// stored, and BASE's RecordedMtime/RecordedSize stay unset.
	RecordFileInfo
	// SyncFileFlags synchronizes the read-only/executable bits on a
	// working file with its recorded mode, without touching content.
	SyncFileFlags
	// Merge runs a three-way text merge and installs the result,
	// recording conflict markers on failure.
	Merge
	// AddTreeConflict stamps a tree-conflict record on a victim node.
	AddTreeConflict
	// WriteOldPropsFile persists the legacy base-properties sidecar file
	// (spec §4.2); only close_directory queues it.
	WriteOldPropsFile
	// PrepareRevertFiles stages the files a future `revert` would need
	// (pre-replace snapshots), mirrored from the pre-edit BASE text.
	PrepareRevertFiles
)

func (k Kind) String() string {
	switch k {
	case InstallFile:
		return "install-file"
	case Move:
		return "move"
	case Remove:
		return "remove"
	case SetMtime:
		return "set-mtime"
	case RecordFileInfo:
		return "record-file-info"
	case SyncFileFlags:
		return "sync-file-flags"
	case Merge:
		return "merge"
	case AddTreeConflict:
		return "add-tree-conflict"
	case WriteOldPropsFile:
		return "write-old-props-file"
	case PrepareRevertFiles:
		return "prepare-revert-files"
	default:
		return "unknown"
	}
}

// Item is one deferred operation. Which fields apply depends on Kind;
// unused fields are left zero.
type Item struct {
	Kind Kind
	Path scpath.RelativePath

	// InstallFile / Merge: source of the new content.
	SourceSHA1 objects.ObjectHash // install from the pristine store by hash
	SourceTemp string             // install from a named temporary instead

	// Move: destination.
	DestPath string

	// SetMtime.
	UseCommitTime bool

	// Merge: the new text comes from SourceSHA1 above; MergeOldTemp and
	// MergeWorkingTemp name the other two merge inputs, and the
	// conflict-marker labels to use if the merge cannot be resolved
	// automatically.
	MergeOldTemp       string
	MergeWorkingTemp   string
	ConflictMineLabel  string
	ConflictTheirLabel string

	// AddTreeConflict.
	ConflictReason string

	// Free-form description, used by dry-run reporting and logging.
	Description string
}

// Runner executes a directory's queued items in order. A real runner
// performs filesystem side effects (see pkg/editor's fileRunner, wrapped
// by RunVia); tests may substitute
// a recording fake.
type Runner interface {
	// Run executes items in order for the given directory. It must be
	// re-entrant: re-invoking Run with a queue that failed partway
	// through must resume rather than double-apply completed items
	// (spec I6, R6). Implementations achieve this by removing each item
	// from the backing queue only after it completes.
	Run(dir scpath.RelativePath, items []Item) error
}

// Queue is an append-only, per-directory ordered list of deferred items,
// persisted only for the lifetime of one process (the durable,
// crash-resumable encoding is out of this module's scope; spec I6's
// resume behavior is modeled here as "re-running Run is idempotent
// against a partially-drained queue", which the in-memory Queue
// satisfies by construction).
type Queue struct {
	items map[scpath.RelativePath][]Item
}

// NewQueue creates an empty work queue.
func NewQueue() *Queue {
	return &Queue{items: make(map[scpath.RelativePath][]Item)}
}

// Append adds item to dir's queue, preserving arrival order.
func (q *Queue) Append(dir scpath.RelativePath, item Item) {
	q.items[dir] = append(q.items[dir], item)
}

// Pending returns dir's queued items without removing them.
func (q *Queue) Pending(dir scpath.RelativePath) []Item {
	return append([]Item(nil), q.items[dir]...)
}

// Drain runs dir's queue through runner, removing each item as soon as
// it completes. On failure, items already removed stay removed and the
// remainder stays queued for the next Drain call on this directory —
// this is the replay-on-resume mechanism spec I6 and R6 require.
func (q *Queue) Drain(dir scpath.RelativePath, runner runOne) error {
	pending := q.items[dir]
	for len(pending) > 0 {
		item := pending[0]
		if err := runner.RunOne(dir, item); err != nil {
			q.items[dir] = pending
			return fmt.Errorf("work queue item %s on %s: %w", item.Kind, item.Path, err)
		}
		pending = pending[1:]
		q.items[dir] = pending
	}
	delete(q.items, dir)
	return nil
}

// runOne is the narrow interface Drain needs; pkg/editor's fileRunner
// implements it, and RunVia below adapts it to the batch Runner interface.
type runOne interface {
	RunOne(dir scpath.RelativePath, item Item) error
}

// RunVia adapts a runOne implementation plus this Queue into the Runner
// interface Store.CommitNode expects: append the items, then drain.
func (q *Queue) RunVia(runner runOne) Runner {
	return &queueRunner{q: q, runner: runner}
}

type queueRunner struct {
	q      *Queue
	runner runOne
}

func (r *queueRunner) Run(dir scpath.RelativePath, items []Item) error {
	for _, it := range items {
		r.q.Append(dir, it)
	}
	return r.q.Drain(dir, r.runner)
}
