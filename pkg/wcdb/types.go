// Package wcdb specifies and implements the working copy's metadata
// store: the transactional per-node BASE/WORKING/ACTUAL layers that the
// edit driver (pkg/editor) reads and writes as it integrates an incoming
// change into each node. The persistent on-disk format is out of this
// module's scope (spec §1); this package specifies the interface the
// rest of the core programs against and ships one concrete,
// process-local implementation (MemStore), row-oriented the way a layered
// configuration entry is.
package wcdb

import (
	"time"

	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
)

// NodeKind is the versioned kind of a node, independent of on-disk reality.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindFile
	KindDir
	KindSymlink
)

func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// BaseStatus is the status recorded in a node's BASE layer: what the
// server said the node was, the last time the working copy heard from it.
type BaseStatus int

const (
	BaseNormal BaseStatus = iota
	BaseAbsent
	BaseExcluded
	BaseNotPresent
	BaseIncomplete
)

func (s BaseStatus) String() string {
	switch s {
	case BaseNormal:
		return "normal"
	case BaseAbsent:
		return "absent"
	case BaseExcluded:
		return "excluded"
	case BaseNotPresent:
		return "not-present"
	case BaseIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// WorkingSchedule is the overlay recording a locally scheduled structural
// change not yet committed.
type WorkingSchedule int

const (
	ScheduleNormal WorkingSchedule = iota
	ScheduleAdd
	ScheduleAddWithHistory
	ScheduleDelete
	ScheduleReplace
	ScheduleBaseDeleted
)

func (s WorkingSchedule) String() string {
	switch s {
	case ScheduleAdd:
		return "add"
	case ScheduleAddWithHistory:
		return "add-with-history"
	case ScheduleDelete:
		return "delete"
	case ScheduleReplace:
		return "replace"
	case ScheduleBaseDeleted:
		return "base-deleted"
	default:
		return "normal"
	}
}

// DerivedStatus is the read-info status the classifier reasons about. It
// is computed from the BASE/WORKING/ACTUAL triple plus on-disk reality,
// never stored directly (spec §3, "Derived statuses").
type DerivedStatus int

const (
	StatusNormal DerivedStatus = iota
	StatusAdded
	StatusCopied
	StatusMovedHere
	StatusDeleted
	StatusBaseDeleted
	StatusIncomplete
	StatusAbsent
	StatusExcluded
	StatusNotPresent
	StatusObstructed
	StatusObstructedAdd
	StatusObstructedDelete
)

func (s DerivedStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusCopied:
		return "copied"
	case StatusMovedHere:
		return "moved-here"
	case StatusDeleted:
		return "deleted"
	case StatusBaseDeleted:
		return "base-deleted"
	case StatusIncomplete:
		return "incomplete"
	case StatusAbsent:
		return "absent"
	case StatusExcluded:
		return "excluded"
	case StatusNotPresent:
		return "not-present"
	case StatusObstructed:
		return "obstructed"
	case StatusObstructedAdd:
		return "obstructed-add"
	case StatusObstructedDelete:
		return "obstructed-delete"
	default:
		return "normal"
	}
}

// LastChange captures the last-changed {rev, date, author} triple cached
// from entry-props at node close.
type LastChange struct {
	Revision int64
	Date     time.Time
	Author   string
}

// BaseRow is the BASE layer: what the server last said about this node.
type BaseRow struct {
	Status       BaseStatus
	Kind         NodeKind
	Revision     int64
	ReposRelPath scpath.RelativePath
	ReposRoot    string
	ReposUUID    string
	Checksum     objects.DualChecksum // file only
	RecordedMtime time.Time
	RecordedSize int64
	Depth        string // dir only: "empty" | "files" | "immediates" | "infinity"
	LastChange   LastChange
	Properties   map[string]string
}

// WorkingRow is the WORKING overlay: a locally scheduled change not yet
// committed. Present is false when the node has no WORKING overlay (the
// common case: the node just mirrors BASE).
type WorkingRow struct {
	Present     bool
	Schedule    WorkingSchedule
	CopyFromURL string // set when Schedule == ScheduleAddWithHistory
	CopyFromRev int64
	MovedFrom   scpath.RelativePath // set when the copy is a same-repository move, not a plain copy
}

// ConflictKind distinguishes the three conflict records a node's ACTUAL
// layer may carry.
type ConflictKind int

const (
	ConflictText ConflictKind = iota
	ConflictProp
	ConflictTree
)

// TreeConflictReason is the reason tag stamped on a tree conflict by the
// classifier (spec §4.1).
type TreeConflictReason int

const (
	ReasonAdded TreeConflictReason = iota
	ReasonReplaced
	ReasonDeleted
	ReasonEdited
	ReasonObstructed
)

func (r TreeConflictReason) String() string {
	switch r {
	case ReasonAdded:
		return "added"
	case ReasonReplaced:
		return "replaced"
	case ReasonDeleted:
		return "deleted"
	case ReasonEdited:
		return "edited"
	case ReasonObstructed:
		return "obstructed"
	default:
		return "unknown"
	}
}

// ConflictVersion identifies one side of a tree conflict: the node's
// identity either before the incoming change (source-left) or as
// described by the incoming change (source-right).
type ConflictVersion struct {
	ReposRoot    string
	ReposRelPath scpath.RelativePath
	Revision     int64
	Kind         NodeKind
}

// TreeConflictInfo is the full record stamped on a victim node (spec §4.1).
type TreeConflictInfo struct {
	Reason      TreeConflictReason
	SourceLeft  *ConflictVersion // nil when Reason == ReasonAdded
	SourceRight ConflictVersion
}

// ActualRow is the ACTUAL layer: conflict state and locally edited
// properties, never mirrored from BASE.
type ActualRow struct {
	TextConflict  bool
	PropConflict  bool
	TreeConflict  *TreeConflictInfo
	Changelist    string
	Properties    map[string]string // locally modified property overlay; nil means "no ACTUAL row"
	HasProperties bool
}

// HasAnyConflict reports whether this node carries a pre-existing
// conflict of any kind.
func (a *ActualRow) HasAnyConflict() bool {
	return a != nil && (a.TextConflict || a.PropConflict || a.TreeConflict != nil)
}

// NodeRecord is the full three-layer state of one versioned node.
type NodeRecord struct {
	Path    scpath.RelativePath
	Base    *BaseRow // nil if the node has never had a BASE row
	Working *WorkingRow
	Actual  *ActualRow
}

// IsShadowed reports whether this node has a WORKING overlay present.
func (n *NodeRecord) IsShadowed() bool {
	return n.Working != nil && n.Working.Present
}
