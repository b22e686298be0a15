package editor

import (
	"io"

	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

// Depth mirrors the working copy's ambient-depth vocabulary used for
// add_directory's depth propagation rule (spec §4.2).
type Depth int

const (
	DepthUnknown Depth = iota
	DepthEmpty
	DepthFiles
	DepthImmediates
	DepthInfinity
)

func (d Depth) String() string {
	switch d {
	case DepthEmpty:
		return "empty"
	case DepthFiles:
		return "files"
	case DepthImmediates:
		return "immediates"
	case DepthInfinity:
		return "infinity"
	default:
		return "unknown"
	}
}

// ParseDepth parses the ambient-depth vocabulary used in configuration
// files and command-line flags. An unrecognized value maps to
// DepthInfinity, the traditional "update everything" default, rather
// than DepthUnknown, so a stray or outdated config value doesn't
// silently truncate a working copy's coverage.
func ParseDepth(s string) Depth {
	switch s {
	case "empty":
		return DepthEmpty
	case "files":
		return DepthFiles
	case "immediates":
		return DepthImmediates
	case "infinity":
		return DepthInfinity
	default:
		return DepthInfinity
	}
}

// NotifyAction is the notification kind emitted for a node (spec §6).
type NotifyAction int

const (
	NotifyUpdateAdd NotifyAction = iota
	NotifyUpdateUpdate
	NotifyUpdateDelete
	NotifyUpdateAddDeleted
	NotifyUpdateObstruction
	NotifySkip
	NotifyTreeConflict
	NotifyExists
)

func (n NotifyAction) String() string {
	switch n {
	case NotifyUpdateAdd:
		return "update_add"
	case NotifyUpdateUpdate:
		return "update_update"
	case NotifyUpdateDelete:
		return "update_delete"
	case NotifyUpdateAddDeleted:
		return "update_add_deleted"
	case NotifyUpdateObstruction:
		return "update_obstruction"
	case NotifySkip:
		return "skip"
	case NotifyTreeConflict:
		return "tree_conflict"
	case NotifyExists:
		return "exists"
	default:
		return "unknown"
	}
}

// ContentState summarizes what happened to a file's text at close.
type ContentState int

const (
	ContentUnchanged ContentState = iota
	ContentChanged
	ContentMerged
	ContentConflicted
)

func (c ContentState) String() string {
	switch c {
	case ContentChanged:
		return "changed"
	case ContentMerged:
		return "merged"
	case ContentConflicted:
		return "conflicted"
	default:
		return "unchanged"
	}
}

// PropState summarizes what happened to a node's properties at close.
type PropState int

const (
	PropUnchanged PropState = iota
	PropChanged
	PropConflicted
)

// LockState summarizes lock-token bookkeeping observed at close.
type LockState int

const (
	LockUnchanged LockState = iota
	LockRemoved
)

// Notification is the one-way record the driver emits to the caller's
// notify callback (spec §6).
type Notification struct {
	Path         scpath.RelativePath
	Action       NotifyAction
	Kind         wcdb.NodeKind
	ContentState ContentState
	PropState    PropState
	LockState    LockState
	Revision     int64
	OldRevision  int64
	MimeType     string
}

// ConflictDescription is handed to the conflict-resolver callback.
type ConflictDescription struct {
	Path      scpath.RelativePath
	Kind      wcdb.ConflictKind
	TreeInfo  *wcdb.TreeConflictInfo
	MineLabel string
	TheirLabel string
}

// ResolverAction is the conflict-resolver callback's decision.
type ResolverAction int

const (
	ResolvePostpone ResolverAction = iota
	ResolveUseMine
	ResolveUseTheirs
	ResolveUseMerged
)

// ConflictResolution is the conflict-resolver callback's return value.
type ConflictResolution struct {
	Action         ResolverAction
	MergedFilePath string
}

// FetchFunc retrieves pristine content for an add-with-history node with
// no usable local source, writing it to sink and returning base
// properties (spec §4.3, "no local source ... invoke the fetch
// callback").
type FetchFunc func(reposRelPath scpath.RelativePath, revision int64, sink io.Writer) (baseProps map[string]string, err error)

// ExternalsFunc is invoked when close_directory detects a change to the
// externals property.
type ExternalsFunc func(dirAbsPath scpath.RelativePath, oldValue, newValue string, depth Depth) error

// Callbacks bundles the capability set the driver consumes from its
// caller (spec §6, §9 "dynamic dispatch of editor callbacks").
type Callbacks struct {
	Cancel           func() error
	Notify           func(Notification)
	ResolveConflict  func(ConflictDescription) (ConflictResolution, error)
	Fetch            FetchFunc
	Externals        ExternalsFunc
}

// checkCancelled polls cb.Cancel if set, translating a non-nil result
// into a Cancelled error tagged with op/path.
func checkCancelled(cb Callbacks, op, path string) error {
	if cb.Cancel == nil {
		return nil
	}
	if err := cb.Cancel(); err != nil {
		return Cancelled(op, path, err)
	}
	return nil
}

func notify(cb Callbacks, n Notification) {
	if cb.Notify != nil {
		cb.Notify(n)
	}
}

// dualChecksumOf is a small convenience used by the file baton when it
// already has fulltext in memory (add-with-history local-copy install)
// rather than a streaming writer.
func dualChecksumOf(data []byte) objects.DualChecksum {
	return objects.ComputeDualChecksum(data)
}
