// Package bumptracker implements the directory bump tracker (spec §4.5):
// a reference-counted per-directory record that the edit driver consults
// to know when a directory's entire subtree has finished closing, so it
// can run directory-completion bookkeeping exactly once, then cascade the
// same event to its parent, tracking the same "all children done"
// condition a checkout manager's atomic transaction bookkeeping does,
// with mutex-guarded counters. The edit driver's completion hook removes
// not-present children only; incomplete is cleared by close_directory
// itself, and no sticky-depth adjustment is made.
package bumptracker

import (
	"sync"

	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
)

// CompletionFunc runs a directory's completion bookkeeping once its
// tracker reaches zero outstanding children. It is invoked with the
// mutex released, so it may itself acquire other locks (e.g. a wcdb
// write lock) without risk of self-deadlock.
type CompletionFunc func(dir scpath.RelativePath)

// Tracker is one directory's bump record. The zero value is not usable;
// create one with New or NewRoot.
type Tracker struct {
	mu       sync.Mutex
	path     scpath.RelativePath
	parent   *Tracker
	refcount int
	skipped  bool
	done     bool
}

// NewRoot creates the tracker for the edit's anchor directory, which has
// no parent to cascade to.
func NewRoot(path scpath.RelativePath) *Tracker {
	return &Tracker{path: path}
}

// NewChild creates a tracker for a directory opened beneath parent,
// registering one reference on the parent for this child directory
// itself (on_close for the child's own dir baton).
func NewChild(parent *Tracker, path scpath.RelativePath) *Tracker {
	t := &Tracker{path: path, parent: parent}
	parent.addRef()
	return t
}

// Path returns the directory this tracker belongs to.
func (t *Tracker) Path() scpath.RelativePath {
	return t.path
}

// MarkSkipped flags the directory as skipped: when its tracker reaches
// zero, the completion callback is not run, matching skip_descendants semantics (spec I2).
func (t *Tracker) MarkSkipped() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.skipped = true
}

// IsSkipped reports whether this directory was marked skipped.
func (t *Tracker) IsSkipped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.skipped
}

// AddChild registers one outstanding child (file or directory baton)
// beneath this tracker. Every AddChild must be matched by exactly one
// Close call for the tree to complete (spec I1).
func (t *Tracker) AddChild() {
	t.addRef()
}

func (t *Tracker) addRef() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refcount++
}

// Close decrements this tracker's outstanding count by one, representing
// one file or directory baton closing beneath it (skipped or not — a
// skipped node still decrements, it simply contributes no BASE/ACTUAL
// mutation). When the count reaches zero, onComplete runs (unless this
// directory was skipped) and the completion cascades to the parent.
//
// Close is idempotent-safe to call concurrently from multiple closing
// children; only the call that observes the count drop to zero runs
// onComplete and cascades.
func (t *Tracker) Close(onComplete CompletionFunc) {
	t.mu.Lock()
	t.refcount--
	if t.refcount > 0 || t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	skipped := t.skipped
	parent := t.parent
	t.mu.Unlock()

	if !skipped && onComplete != nil {
		onComplete(t.path)
	}
	if parent != nil {
		parent.Close(onComplete)
	}
}

// Outstanding returns the current reference count, for diagnostics and
// tests; it is not meant to drive control flow (Close already handles
// the zero transition exactly once).
func (t *Tracker) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refcount
}
