// Package classifier implements the node-state classifier: a pure
// function that, given a node's existing three-layer state and an
// incoming editor action, decides whether to apply the change, skip it,
// or raise a tree conflict, generalized from a two-tree diff ("current
// state vs target state producing a small operation set") to "incoming
// editor action vs working copy node".
package classifier

import (
	"context"

	"github.com/Dhanabal/svnwc/pkg/common/concurrency"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

// Action is the incoming editor operation being classified.
type Action int

const (
	ActionEdit Action = iota
	ActionAdd
	ActionDelete
	ActionReplace
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionDelete:
		return "delete"
	case ActionReplace:
		return "replace"
	default:
		return "edit"
	}
}

// Verdict is the classifier's decision.
type Verdict int

const (
	Proceed Verdict = iota
	SkipAlreadyConflicted
	SkipObstructed
	VerdictTreeConflict
)

func (v Verdict) String() string {
	switch v {
	case SkipAlreadyConflicted:
		return "skip-already-conflicted"
	case SkipObstructed:
		return "skip-obstructed"
	case VerdictTreeConflict:
		return "tree-conflict"
	default:
		return "proceed"
	}
}

// Result is the full classifier output. Reason/SourceLeft/SourceRight
// are only meaningful when Verdict == VerdictTreeConflict.
type Result struct {
	Verdict     Verdict
	Reason      wcdb.TreeConflictReason
	SourceLeft  *wcdb.ConflictVersion
	SourceRight wcdb.ConflictVersion
}

// Incoming describes the editor's intent for a node, independent of
// current working-copy state.
type Incoming struct {
	Action       Action
	Kind         wcdb.NodeKind
	ReposRoot    string
	ReposRelPath scpath.RelativePath
	Revision     int64
}

// Input bundles everything the classifier needs: the node's current
// record, whether disk reality obstructs it, whether it sits beneath an
// already-conflicted ancestor, and the incoming editor intent.
type Input struct {
	Node                    *wcdb.NodeRecord
	OnDiskKind              wcdb.NodeKind
	UnderConflictedAncestor bool
	Incoming                Incoming
}

// ModWalker answers whether a directory subtree's local modifications
// are exclusively scheduled deletes, for the "deleted vs edited" tree
// conflict reason split. A real implementation walks wcdb via
// DeepModificationWalk; tests may substitute a fixed answer.
type ModWalker interface {
	AllEditsAreDeletes(ctx context.Context, dir *wcdb.NodeRecord) (bool, error)
}

// Classify computes the verdict for a single node. walker is nil when
// the node is a file (no subtree to inspect) or when the caller has
// already resolved all_edits_are_deletes another way.
func Classify(ctx context.Context, in Input, walker ModWalker) (Result, error) {
	node := in.Node

	if node != nil && node.Actual.HasAnyConflict() {
		return Result{Verdict: SkipAlreadyConflicted}, nil
	}
	if in.UnderConflictedAncestor {
		return Result{Verdict: SkipAlreadyConflicted}, nil
	}

	status := wcdb.DeriveStatus(node, in.OnDiskKind)

	switch status {
	case wcdb.StatusAbsent, wcdb.StatusExcluded, wcdb.StatusNotPresent:
		return Result{Verdict: Proceed}, nil
	}

	obstructedStatus := status == wcdb.StatusObstructed ||
		status == wcdb.StatusObstructedAdd ||
		status == wcdb.StatusObstructedDelete

	switch status {
	case wcdb.StatusAdded, wcdb.StatusCopied, wcdb.StatusMovedHere, wcdb.StatusObstructedAdd:
		shadowed := node != nil && node.IsShadowed()
		baseNotPresent := node == nil || node.Base == nil || node.Base.Status == wcdb.BaseNotPresent
		if !shadowed || baseNotPresent {
			if in.Incoming.Action != ActionAdd {
				return Result{}, malformedAction(in.Incoming.Action, status)
			}
			return treeConflict(wcdb.ReasonAdded, in, node), nil
		}
		return treeConflict(wcdb.ReasonReplaced, in, node), nil

	case wcdb.StatusDeleted, wcdb.StatusObstructedDelete:
		return treeConflict(wcdb.ReasonDeleted, in, node), nil

	case wcdb.StatusNormal, wcdb.StatusIncomplete, wcdb.StatusObstructed:
		if in.Incoming.Action == ActionEdit {
			if obstructedStatus {
				return Result{Verdict: SkipObstructed}, nil
			}
			return Result{Verdict: Proceed}, nil
		}

		// delete or replace: an unmodified file has nothing local to lose,
		// so the change proceeds; otherwise the reason depends on whether
		// every local modification is a delete.
		if node != nil && node.Base != nil && node.Base.Kind != wcdb.KindDir && !isLocallyModified(node) {
			return Result{Verdict: Proceed}, nil
		}
		allDeletes := true
		if walker != nil {
			var err error
			allDeletes, err = walker.AllEditsAreDeletes(ctx, node)
			if err != nil {
				return Result{}, err
			}
		}
		if allDeletes {
			return treeConflict(wcdb.ReasonDeleted, in, node), nil
		}
		return treeConflict(wcdb.ReasonEdited, in, node), nil
	}

	return Result{Verdict: Proceed}, nil
}

func treeConflict(reason wcdb.TreeConflictReason, in Input, node *wcdb.NodeRecord) Result {
	var left *wcdb.ConflictVersion
	if reason != wcdb.ReasonAdded && node != nil && node.Base != nil {
		left = &wcdb.ConflictVersion{
			ReposRoot:    node.Base.ReposRoot,
			ReposRelPath: node.Base.ReposRelPath,
			Revision:     node.Base.Revision,
			Kind:         node.Base.Kind,
		}
	}

	rightKind := in.Incoming.Kind
	if reason == wcdb.ReasonDeleted && left != nil {
		rightKind = left.Kind
	}

	right := wcdb.ConflictVersion{
		ReposRoot:    in.Incoming.ReposRoot,
		ReposRelPath: in.Incoming.ReposRelPath,
		Revision:     in.Incoming.Revision,
		Kind:         rightKind,
	}

	return Result{
		Verdict:     VerdictTreeConflict,
		Reason:      reason,
		SourceLeft:  left,
		SourceRight: right,
	}
}

func malformedAction(a Action, status wcdb.DerivedStatus) error {
	return &MalformedActionError{Action: a, Status: status}
}

// MalformedActionError is returned when the incoming stream requests an
// action the current node status cannot accept (e.g. an edit on a node
// whose status is "added" with no shadowing WORKING overlay at all).
type MalformedActionError struct {
	Action Action
	Status wcdb.DerivedStatus
}

func (e *MalformedActionError) Error() string {
	return "malformed editor stream: action " + e.Action.String() + " invalid for status " + e.Status.String()
}

// DeepModificationWalk walks dir's subtree (excluding hidden/absent
// entries), returning true iff every modified descendant has
// scheduled-delete status (spec §4.1 "Deep modification check"). A
// descendant counts as modified when it has a WORKING row or ACTUAL
// properties; working-file text is not compared with the pristine.
// Descendants are checked concurrently via the shared worker pool.
type DeepModificationWalk struct {
	Store       wcdb.Store
	WorkerCount int
}

func (w *DeepModificationWalk) AllEditsAreDeletes(ctx context.Context, dir *wcdb.NodeRecord) (bool, error) {
	if dir == nil {
		return true, nil
	}

	children, err := w.Store.WalkChildren(dir.Path)
	if err != nil {
		return false, err
	}
	if len(children) == 0 {
		return true, nil
	}

	var opts []concurrency.Option
	if w.WorkerCount > 0 {
		opts = append(opts, concurrency.WithWorkerCount(w.WorkerCount))
	}
	pool := concurrency.NewWorkerPool[scpath.RelativePath, bool](opts...)

	results, err := pool.Process(ctx, children, func(ctx context.Context, path scpath.RelativePath) (bool, error) {
		node, err := w.Store.ReadNode(path)
		if err != nil {
			return false, err
		}
		if node == nil {
			return true, nil
		}

		status := wcdb.DeriveStatus(node, wcdb.KindUnknown)
		if status == wcdb.StatusAbsent || status == wcdb.StatusExcluded || status == wcdb.StatusNotPresent {
			return true, nil
		}
		if !isLocallyModified(node) {
			return true, nil
		}
		if status != wcdb.StatusDeleted && status != wcdb.StatusObstructedDelete {
			return false, nil
		}

		childWalk := &DeepModificationWalk{Store: w.Store, WorkerCount: w.WorkerCount}
		return childWalk.AllEditsAreDeletes(ctx, node)
	})
	if err != nil {
		return false, err
	}

	for _, allDeletes := range results {
		if !allDeletes {
			return false, nil
		}
	}
	return true, nil
}

func isLocallyModified(node *wcdb.NodeRecord) bool {
	if node.IsShadowed() {
		return true
	}
	return node.Actual != nil && node.Actual.HasProperties
}
