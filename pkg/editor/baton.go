package editor

import (
	"github.com/Dhanabal/svnwc/pkg/bumptracker"
	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

// DirBaton is the per-directory editor state (spec §3, "Per-directory
// editor state"): what open_directory/add_directory hands back and every
// subsequent change_dir_prop/add_file/open_file/close_directory call for
// that directory receives.
type DirBaton struct {
	Session *Session
	Parent  *DirBaton

	Path         scpath.RelativePath // working-copy-relative
	ReposRelPath scpath.RelativePath
	BaseRevision int64

	Added     bool
	Obstructed bool
	Skipped   bool

	// inDeletedTreeConflictedSubtree is set on a directory opened beneath
	// a tree-conflict victim whose reason was "deleted" or "replaced":
	// the subtree is still walked (so nested tree conflicts on the
	// deletion's own descendants are still recorded) but every node in
	// it is treated as already conflicted for further incoming changes.
	inDeletedTreeConflictedSubtree bool

	Depth     Depth
	AmbientDepth Depth

	Tracker *bumptracker.Tracker

	PropChanges map[string]string
	PropDeletes map[string]bool

	hadPropChange bool
}

// inConflictedSubtree reports whether this directory or any ancestor of
// it was skipped for a pre-existing conflict or was itself the subtree
// root of a deleted/replaced tree conflict (spec §4.1: descendants of a
// conflicted node are classified SkipAlreadyConflicted).
func (b *DirBaton) inConflictedSubtree() bool {
	for d := b; d != nil; d = d.Parent {
		if d.Skipped || d.inDeletedTreeConflictedSubtree {
			return true
		}
	}
	return false
}

// markIncomplete commits this directory's BASE row as incomplete, so a
// process that dies between open_directory and close_directory leaves
// the working copy recording that fact rather than silently looking
// normal (spec §4.2, open_root/open_directory/add_directory leave a
// node incomplete until its own close_directory writes BaseNormal).
func (b *DirBaton) markIncomplete() {
	b.Session.Store.CommitNode(wcdb.NodeWrite{
		Path: b.Path,
		Base: &wcdb.BaseRow{
			Status:       wcdb.BaseIncomplete,
			Kind:         wcdb.KindDir,
			Revision:     b.BaseRevision,
			ReposRelPath: b.ReposRelPath,
		},
	}, nil)
}

// newDirBaton constructs a directory baton for path, chaining it beneath
// parent's bump tracker (or creating a root tracker when parent is nil).
//
// The new tracker is given one self-reference, released only by this
// directory's own close_directory call. Without it, a directory whose
// last child closes before close_directory runs would hit a zero
// refcount early and cascade to the parent prematurely, since children
// always close before their own directory does (spec §4.2 nesting
// order) and there would otherwise be nothing left to require
// close_directory's own Close call before the tracker completes.
func newDirBaton(session *Session, parent *DirBaton, path, reposRelPath scpath.RelativePath, baseRev int64, added bool) *DirBaton {
	var tracker *bumptracker.Tracker
	if parent == nil {
		tracker = bumptracker.NewRoot(path)
	} else {
		tracker = bumptracker.NewChild(parent.Tracker, path)
	}
	tracker.AddChild()

	return &DirBaton{
		Session:      session,
		Parent:       parent,
		Path:         path,
		ReposRelPath: reposRelPath,
		BaseRevision: baseRev,
		Added:        added,
		Tracker:      tracker,
		PropChanges:  make(map[string]string),
		PropDeletes:  make(map[string]bool),
	}
}

// recordPropChange accumulates one incoming change_dir_prop/change_file_prop
// call; a nil value means the property was deleted (spec §4.2).
func (b *DirBaton) recordPropChange(name string, value *string) {
	b.hadPropChange = true
	if value == nil {
		b.PropDeletes[name] = true
		delete(b.PropChanges, name)
		return
	}
	delete(b.PropDeletes, name)
	b.PropChanges[name] = *value
}

// applyProps folds this baton's accumulated prop changes onto base,
// returning the resulting property map and whether anything changed.
func (b *DirBaton) applyProps(base map[string]string) (map[string]string, bool) {
	if !b.hadPropChange {
		return base, false
	}
	out := make(map[string]string, len(base))
	for k, v := range base {
		out[k] = v
	}
	for name := range b.PropDeletes {
		delete(out, name)
	}
	for name, value := range b.PropChanges {
		out[name] = value
	}
	return out, true
}

// FileBaton is the per-file editor state (spec §3, "Per-file editor
// state"): add_file/open_file hands this back, apply_textdelta and
// change_file_prop accumulate into it, and close_file consumes it.
type FileBaton struct {
	Session *Session
	Parent  *DirBaton

	Path         scpath.RelativePath
	ReposRelPath scpath.RelativePath
	BaseRevision int64

	Added      bool
	AddedWithHistory bool
	Obstructed bool
	Skipped    bool
	scheduledReplace bool

	PropChanges map[string]string
	PropDeletes map[string]bool
	hadPropChange bool

	// Populated once apply_textdelta has installed a new fulltext.
	NewTextInstalled bool
	NewSHA1          objects.ObjectHash
	NewChecksum      objects.DualChecksum
	ExpectedBaseMD5  string

	// Populated when add-with-history locates a local source (spec §4.3).
	CopySourcePath       scpath.RelativePath
	PreservedWorkingTemp string
}

func newFileBaton(session *Session, parent *DirBaton, path, reposRelPath scpath.RelativePath, baseRev int64, added bool) *FileBaton {
	parent.Tracker.AddChild()
	return &FileBaton{
		Session:      session,
		Parent:       parent,
		Path:         path,
		ReposRelPath: reposRelPath,
		BaseRevision: baseRev,
		Added:        added,
		PropChanges:  make(map[string]string),
		PropDeletes:  make(map[string]bool),
	}
}

func (b *FileBaton) recordPropChange(name string, value *string) {
	b.hadPropChange = true
	if value == nil {
		b.PropDeletes[name] = true
		delete(b.PropChanges, name)
		return
	}
	delete(b.PropDeletes, name)
	b.PropChanges[name] = *value
}

func (b *FileBaton) applyProps(base map[string]string) (map[string]string, bool) {
	if !b.hadPropChange {
		return base, false
	}
	out := make(map[string]string, len(base))
	for k, v := range base {
		out[k] = v
	}
	for name := range b.PropDeletes {
		delete(out, name)
	}
	for name, value := range b.PropChanges {
		out[name] = value
	}
	return out, true
}

// close closes this file's bump-tracker reference, cascading completion
// to its parent directory when this was the last outstanding child.
func (b *FileBaton) close(onComplete bumptracker.CompletionFunc) {
	b.Parent.Tracker.Close(onComplete)
}
