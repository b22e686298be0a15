package wcdb

import (
	"errors"
	"testing"

	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/workqueue"
)

func TestMemStore_ReadNode_Missing(t *testing.T) {
	s := NewMemStore()
	rec, err := s.ReadNode("missing.txt")
	if err != nil {
		t.Fatalf("ReadNode() error = %v", err)
	}
	if rec != nil {
		t.Errorf("ReadNode() = %+v, want nil", rec)
	}
}

func TestMemStore_CommitNode_ReadBack(t *testing.T) {
	s := NewMemStore()
	base := &BaseRow{Status: BaseNormal, Kind: KindFile, Revision: 42}

	err := s.CommitNode(NodeWrite{Path: "src/a.txt", Base: base}, nil)
	if err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}

	rec, err := s.ReadNode("src/a.txt")
	if err != nil {
		t.Fatalf("ReadNode() error = %v", err)
	}
	if rec == nil {
		t.Fatal("ReadNode() = nil, want a record")
	}
	if rec.Base.Revision != 42 {
		t.Errorf("Base.Revision = %d, want 42", rec.Base.Revision)
	}
}

func TestMemStore_CommitNode_PreservesWorkingWhenNotSet(t *testing.T) {
	s := NewMemStore()
	working := &WorkingRow{Present: true, Schedule: ScheduleAdd}

	if err := s.CommitNode(NodeWrite{Path: "a.txt", Working: working}, nil); err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}

	// A second commit that only updates Base must leave Working intact.
	if err := s.CommitNode(NodeWrite{Path: "a.txt", Base: &BaseRow{Status: BaseNormal}}, nil); err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}

	rec, _ := s.ReadNode("a.txt")
	if rec.Working == nil || !rec.Working.Present {
		t.Fatalf("Working = %+v, want preserved ScheduleAdd overlay", rec.Working)
	}
	if rec.Working.Schedule != ScheduleAdd {
		t.Errorf("Working.Schedule = %v, want ScheduleAdd", rec.Working.Schedule)
	}
}

func TestMemStore_CommitNode_NilActualClearsConflicts(t *testing.T) {
	s := NewMemStore()
	if err := s.CommitNode(NodeWrite{Path: "a.txt", Actual: &ActualRow{TextConflict: true}}, nil); err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}
	rec, _ := s.ReadNode("a.txt")
	if !rec.Actual.HasAnyConflict() {
		t.Fatal("expected a conflict to be recorded before clearing")
	}

	if err := s.CommitNode(NodeWrite{Path: "a.txt", Actual: nil}, nil); err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}
	rec, _ = s.ReadNode("a.txt")
	if rec.Actual != nil {
		t.Errorf("Actual = %+v, want nil after clearing commit", rec.Actual)
	}
}

type fakeRunner struct {
	called bool
	dir    scpath.RelativePath
	items  []workqueue.Item
	err    error
}

func (f *fakeRunner) Run(dir scpath.RelativePath, items []workqueue.Item) error {
	f.called = true
	f.dir = dir
	f.items = items
	return f.err
}

func TestMemStore_CommitNode_RunsWorkQueue(t *testing.T) {
	s := NewMemStore()
	runner := &fakeRunner{}

	items := []workqueue.Item{{Kind: workqueue.InstallFile, Path: "src/a.txt"}}
	err := s.CommitNode(NodeWrite{
		Path:         "src/a.txt",
		Base:         &BaseRow{Status: BaseNormal},
		WorkItems:    items,
		WorkQueueDir: "src",
	}, runner)
	if err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}
	if !runner.called {
		t.Fatal("expected work queue runner to be invoked")
	}
	if runner.dir != "src" {
		t.Errorf("runner.dir = %v, want src", runner.dir)
	}
	if len(runner.items) != 1 {
		t.Errorf("runner.items = %v, want 1 item", runner.items)
	}
}

func TestMemStore_CommitNode_WorkQueueFailureWraps(t *testing.T) {
	s := NewMemStore()
	wantErr := errors.New("disk full")
	runner := &fakeRunner{err: wantErr}

	err := s.CommitNode(NodeWrite{
		Path:         "a.txt",
		WorkItems:    []workqueue.Item{{Kind: workqueue.Remove}},
		WorkQueueDir: "",
	}, runner)
	if err == nil {
		t.Fatal("CommitNode() expected error")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("CommitNode() error = %v, want wrapping %v", err, wantErr)
	}
}

func TestMemStore_DeleteNode(t *testing.T) {
	s := NewMemStore()
	if err := s.CommitNode(NodeWrite{Path: "dir/a.txt", Base: &BaseRow{Status: BaseNormal}}, nil); err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}

	if err := s.DeleteNode("dir/a.txt"); err != nil {
		t.Fatalf("DeleteNode() error = %v", err)
	}

	rec, _ := s.ReadNode("dir/a.txt")
	if rec != nil {
		t.Errorf("ReadNode() after delete = %+v, want nil", rec)
	}

	children, err := s.WalkChildren("dir")
	if err != nil {
		t.Fatalf("WalkChildren() error = %v", err)
	}
	if len(children) != 0 {
		t.Errorf("WalkChildren() = %v, want empty after delete", children)
	}
}

func TestMemStore_WalkChildren(t *testing.T) {
	s := NewMemStore()
	for _, p := range []scpath.RelativePath{"dir/a.txt", "dir/b.txt", "dir/sub/c.txt"} {
		if err := s.CommitNode(NodeWrite{Path: p, Base: &BaseRow{Status: BaseNormal}}, nil); err != nil {
			t.Fatalf("CommitNode(%s) error = %v", p, err)
		}
	}

	children, err := s.WalkChildren("dir")
	if err != nil {
		t.Fatalf("WalkChildren() error = %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("WalkChildren() = %v, want 2 direct children", children)
	}
}

func TestMemStore_AcquireAndReleaseLock(t *testing.T) {
	s := NewMemStore()
	lock, err := s.AcquireLock("dir")
	if err != nil {
		t.Fatalf("AcquireLock() error = %v", err)
	}
	if lock.Path() != "dir" {
		t.Errorf("lock.Path() = %v, want dir", lock.Path())
	}
	if !s.locks["dir"] {
		t.Fatal("expected lock to be held")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if s.locks["dir"] {
		t.Error("expected lock to be released")
	}
}
