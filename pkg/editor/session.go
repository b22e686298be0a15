package editor

import (
	"context"
	"sync"

	"github.com/Dhanabal/svnwc/pkg/classifier"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/store"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
	"github.com/Dhanabal/svnwc/pkg/workqueue"
)

// Config is the session-level configuration an update or switch is
// driven under (spec §9 ambient configuration: use_commit_times,
// allow_unver_obstructions, depth, sticky-depth).
type Config struct {
	UseCommitTimes        bool
	AllowUnverObstructions bool
	Depth                  Depth
	DepthIsSticky          bool
}

// Session is the global edit baton (spec §3 "Global session state"): the
// anchor/target, switch URL, target revision, callback set, and the
// cross-cutting flags and bookkeeping the Edit Driver threads through
// every operation.
type Session struct {
	mu sync.Mutex

	WCRoot         scpath.AbsolutePath // the working copy's absolute root on disk
	Anchor         scpath.RelativePath
	TargetBasename string
	SwitchReposRelPath scpath.RelativePath // empty when this is an update, not a switch
	AnchorReposRoot string
	AnchorReposUUID string

	Config    Config
	Callbacks Callbacks

	Store    wcdb.Store
	Pristine store.PristineStore
	Queue    *workqueue.Queue
	Runner   workqueue.Runner

	targetRevision int64
	rootOpened     bool
	targetDeleted  bool
	closeComplete  bool

	skippedTrees map[scpath.RelativePath]bool

	// textConflicts records paths whose deferred merge work item found
	// the working copy's local edits could not be reconciled
	// automatically with the incoming text. A CommitNode's work queue
	// runs inside the store's own critical section, so the runner
	// cannot call back into Store to stamp the ACTUAL row directly; it
	// marks the path here instead, and CloseFile checks and clears it
	// once CommitNode has returned.
	textConflicts map[scpath.RelativePath]bool

	rootBaton *DirBaton
}

// NewSession constructs an edit session rooted at anchor. switchReposRelPath
// is empty for a plain update. anchorReposRoot must match the
// repository root the switch URL resolves under, or session
// construction fails with InvalidSwitch (spec scenario 4).
func NewSession(
	wcRoot scpath.AbsolutePath,
	anchor scpath.RelativePath,
	targetBasename string,
	anchorReposRoot, anchorReposUUID string,
	switchReposRoot, switchReposRelPath string,
	cfg Config,
	cb Callbacks,
	metaStore wcdb.Store,
	pristine store.PristineStore,
) (*Session, error) {
	if switchReposRoot != "" && switchReposRoot != anchorReposRoot {
		return nil, InvalidSwitch("new_session", anchor.String(),
			"switch URL repository root does not match the working copy's repository root")
	}

	s := &Session{
		WCRoot:             wcRoot,
		Anchor:             anchor,
		TargetBasename:     targetBasename,
		SwitchReposRelPath: scpath.RelativePath(switchReposRelPath),
		AnchorReposRoot:    anchorReposRoot,
		AnchorReposUUID:    anchorReposUUID,
		Config:             cfg,
		Callbacks:          cb,
		Store:              metaStore,
		Pristine:           pristine,
		Queue:              workqueue.NewQueue(),
		skippedTrees:       make(map[scpath.RelativePath]bool),
		textConflicts:      make(map[scpath.RelativePath]bool),
	}
	s.Runner = s.Queue.RunVia(&fileRunner{session: s})
	return s, nil
}

// IsSwitch reports whether this session performs a switch (repos-relpath
// rewrite) rather than a plain update.
func (s *Session) IsSwitch() bool {
	return s.SwitchReposRelPath != ""
}

// SetTargetRevision stores the target revision for the whole edit.
func (s *Session) SetTargetRevision(rev int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetRevision = rev
	return nil
}

// TargetRevision returns the revision every non-skipped node must end
// the edit at (spec P1).
func (s *Session) TargetRevision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetRevision
}

// addSkippedTree records path as exempt from the close_edit cleanup
// walk's revision/URL rewrite (spec I2, I4).
func (s *Session) addSkippedTree(path scpath.RelativePath) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skippedTrees[path] = true
}

// isSkippedTree reports whether path (or an ancestor of it) was added to
// the skipped-trees set.
func (s *Session) isSkippedTree(path scpath.RelativePath) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := path; ; p = p.Dir() {
		if s.skippedTrees[p] {
			return true
		}
		if p == "" || p.Depth() <= 1 {
			return p != "" && s.skippedTrees[p]
		}
	}
}

// markTextConflict records that path's deferred merge produced conflict
// markers instead of a clean result.
func (s *Session) markTextConflict(path scpath.RelativePath) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textConflicts[path] = true
}

// takeTextConflict reports whether path was marked by markTextConflict,
// clearing the mark so a later close of the same path starts clean.
func (s *Session) takeTextConflict(path scpath.RelativePath) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	conflicted := s.textConflicts[path]
	delete(s.textConflicts, path)
	return conflicted
}

// newDirModWalk builds a classifier.ModWalker bound to this session's
// metadata store, for the deep-modification check on delete/replace.
func (s *Session) newDirModWalk() classifier.ModWalker {
	return &classifier.DeepModificationWalk{Store: s.Store}
}

// checkCancel polls the session's cancel callback.
func (s *Session) checkCancel(op, path string) error {
	return checkCancelled(s.Callbacks, op, path)
}

// resolveReposRelPath computes the repository-relative path a node
// should be recorded under: under switch, the anchor's rewritten
// repos-relpath joined with the node's working-copy-relative path
// beneath the anchor; under update, the working-copy-relative path is
// used unchanged (spec §3, "Node identity").
func (s *Session) resolveReposRelPath(wcRelPath scpath.RelativePath) scpath.RelativePath {
	if !s.IsSwitch() {
		return wcRelPath
	}
	rel, err := relativeBeneathAnchor(s.Anchor, wcRelPath)
	if err != nil {
		return s.SwitchReposRelPath
	}
	if rel == "" {
		return s.SwitchReposRelPath
	}
	return s.SwitchReposRelPath.Join(string(rel))
}

func relativeBeneathAnchor(anchor, path scpath.RelativePath) (scpath.RelativePath, error) {
	if anchor == "" {
		return path, nil
	}
	if !path.IsInSubdir(anchor.String()) && path != anchor {
		return "", MalformedStream("resolve_repos_relpath", path.String(), "path is not beneath the anchor")
	}
	if path == anchor {
		return "", nil
	}
	trimmed := path.String()[len(anchor.String()):]
	for len(trimmed) > 0 && trimmed[0] == '/' {
		trimmed = trimmed[1:]
	}
	return scpath.RelativePath(trimmed), nil
}

// absPath resolves a working-copy-relative path to its absolute location
// on disk beneath WCRoot.
func (s *Session) absPath(path scpath.RelativePath) scpath.AbsolutePath {
	if path == "" {
		return s.WCRoot
	}
	return s.WCRoot.Join(path.Components()...)
}

// ensureContext returns a background context; the editor operations are
// cooperative and synchronous (spec §5), so a fresh context per call
// (cancellation is via the Callbacks.Cancel poll, not ctx) is adequate.
func ensureContext() context.Context {
	return context.Background()
}
