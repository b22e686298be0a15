package wcdb

import (
	"sync"

	werr "github.com/Dhanabal/svnwc/pkg/common/err"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/workqueue"
)

const pkgName = "wcdb"

// Error codes specific to the metadata store.
const (
	CodeNodeNotFound = "NODE_NOT_FOUND"
	CodeLockHeld     = "LOCK_HELD"
)

// NodeWrite bundles everything a single node-close commits: the new BASE
// row, the new ACTUAL row (nil means "no ACTUAL row", spec §4.2
// close_directory), and the work-queue items accumulated for that
// node's directory. Store.CommitNode applies all three under one
// critical section — this is the single-transaction shape spec §9
// flags as the correct target for the BASE/ACTUAL double-write.
type NodeWrite struct {
	Path       scpath.RelativePath
	Base       *BaseRow
	Working    *WorkingRow // nil leaves the existing WORKING overlay untouched
	Actual     *ActualRow  // nil means "clear the ACTUAL row" (no conflicts, no local prop edits)
	WorkItems  []workqueue.Item
	WorkQueueDir scpath.RelativePath // directory the WorkItems are queued under
}

// Store is the metadata-store interface the edit driver programs
// against (spec §6, "Metadata-store interface"). The persistent
// on-disk encoding is out of scope; this module ships one concrete,
// process-local implementation below.
type Store interface {
	// ReadNode returns the current three-layer state of path, or
	// (nil, nil) if nothing is recorded for it yet.
	ReadNode(path scpath.RelativePath) (*NodeRecord, error)

	// CommitNode writes a node's new BASE/ACTUAL rows and then runs its
	// directory's queued work, both in one critical section. Property
	// files are written by WriteOldPropsFile items in that queue, so they
	// are written after the BASE row is replaced, not before.
	CommitNode(write NodeWrite, runner workqueue.Runner) error

	// DeleteNode removes all layers for path (used once a delete has
	// fully drained, leaving at most a not-present placeholder).
	DeleteNode(path scpath.RelativePath) error

	// WalkChildren returns the direct versioned children of a
	// directory path (non-recursive), for the classifier's deep
	// modification walk and the bump tracker's stale-child sweep.
	WalkChildren(dir scpath.RelativePath) ([]scpath.RelativePath, error)

	// AcquireLock takes the per-directory write lock described in
	// spec §5. Re-entrant within the same Store instance (a directory
	// already locked by this process may be locked again, mirroring
	// the way a single edit session holds its own locks for its
	// lifetime).
	AcquireLock(dir scpath.RelativePath) (Lock, error)
}

// Lock is a held per-directory write lock.
type Lock interface {
	Release() error
	Path() scpath.RelativePath
}

// MemStore is an in-process Store implementation. It guards all state
// with a single RWMutex — adequate for a single edit session's
// lifetime, which is the only concurrency this core specifies (spec §5).
type MemStore struct {
	mu       sync.RWMutex
	nodes    map[scpath.RelativePath]*NodeRecord
	children map[scpath.RelativePath]map[scpath.RelativePath]bool
	locks    map[scpath.RelativePath]bool
}

// NewMemStore creates an empty metadata store.
func NewMemStore() *MemStore {
	return &MemStore{
		nodes:    make(map[scpath.RelativePath]*NodeRecord),
		children: make(map[scpath.RelativePath]map[scpath.RelativePath]bool),
		locks:    make(map[scpath.RelativePath]bool),
	}
}

func (s *MemStore) ReadNode(path scpath.RelativePath) (*NodeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[path]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (s *MemStore) CommitNode(w NodeWrite, runner workqueue.Runner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.nodes[w.Path]
	rec := &NodeRecord{Path: w.Path}
	if existing != nil {
		rec.Working = existing.Working
		rec.Actual = existing.Actual
	}
	if w.Base != nil {
		rec.Base = w.Base
	} else if existing != nil {
		rec.Base = existing.Base
	}
	if w.Working != nil {
		rec.Working = w.Working
	}
	rec.Actual = w.Actual // nil explicitly clears ACTUAL, matching "no ACTUAL row"

	s.nodes[w.Path] = rec
	s.registerChild(w.Path)

	if runner != nil && len(w.WorkItems) > 0 {
		if err := runner.Run(w.WorkQueueDir, w.WorkItems); err != nil {
			return werr.New(pkgName, werr.CodeTransaction, "commit_node", "work queue run failed", err)
		}
	}
	return nil
}

func (s *MemStore) DeleteNode(path scpath.RelativePath) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, path)
	if kids, ok := s.children[path.Dir()]; ok {
		delete(kids, path)
	}
	return nil
}

func (s *MemStore) WalkChildren(dir scpath.RelativePath) ([]scpath.RelativePath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kids := s.children[dir]
	out := make([]scpath.RelativePath, 0, len(kids))
	for k := range kids {
		out = append(out, k)
	}
	return out, nil
}

func (s *MemStore) AcquireLock(dir scpath.RelativePath) (Lock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locks[dir] = true
	return &memLock{store: s, dir: dir}, nil
}

func (s *MemStore) registerChild(path scpath.RelativePath) {
	parent := path.Dir()
	if s.children[parent] == nil {
		s.children[parent] = make(map[scpath.RelativePath]bool)
	}
	s.children[parent][path] = true
}

type memLock struct {
	store *MemStore
	dir   scpath.RelativePath
}

func (l *memLock) Release() error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	delete(l.store.locks, l.dir)
	return nil
}

func (l *memLock) Path() scpath.RelativePath { return l.dir }
