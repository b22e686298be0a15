package workqueue

import (
	"errors"
	"testing"

	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
)

type recordingRunner struct {
	ran     []Item
	failOn  Kind
	failed  bool
}

func (r *recordingRunner) RunOne(_ scpath.RelativePath, item Item) error {
	if r.failOn == item.Kind && !r.failed {
		r.failed = true
		return errors.New("simulated failure")
	}
	r.ran = append(r.ran, item)
	return nil
}

func TestQueue_AppendAndDrain(t *testing.T) {
	q := NewQueue()
	dir := scpath.RelativePath("src")

	q.Append(dir, Item{Kind: InstallFile, Path: "src/a.txt"})
	q.Append(dir, Item{Kind: SetMtime, Path: "src/a.txt"})
	q.Append(dir, Item{Kind: RecordFileInfo, Path: "src/a.txt"})

	runner := &recordingRunner{failOn: -1} // no item has Kind -1, so none fails
	if err := q.Drain(dir, runner); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}

	if len(runner.ran) != 3 {
		t.Fatalf("ran %d items, want 3", len(runner.ran))
	}
	wantOrder := []Kind{InstallFile, SetMtime, RecordFileInfo}
	for i, k := range wantOrder {
		if runner.ran[i].Kind != k {
			t.Errorf("ran[%d].Kind = %v, want %v", i, runner.ran[i].Kind, k)
		}
	}

	if pending := q.Pending(dir); len(pending) != 0 {
		t.Errorf("Pending() after drain = %v, want empty", pending)
	}
}

func TestQueue_DrainResumesAfterFailure(t *testing.T) {
	q := NewQueue()
	dir := scpath.RelativePath("src")

	q.Append(dir, Item{Kind: InstallFile, Path: "src/a.txt"})
	q.Append(dir, Item{Kind: Merge, Path: "src/b.txt"})
	q.Append(dir, Item{Kind: RecordFileInfo, Path: "src/b.txt"})

	runner := &recordingRunner{failOn: Merge}
	if err := q.Drain(dir, runner); err == nil {
		t.Fatal("Drain() expected error on first attempt")
	}

	pending := q.Pending(dir)
	if len(pending) != 2 {
		t.Fatalf("Pending() after failed drain = %d items, want 2", len(pending))
	}
	if pending[0].Kind != Merge {
		t.Errorf("Pending()[0].Kind = %v, want Merge", pending[0].Kind)
	}

	// Resume: the same item that failed now succeeds (recordingRunner only
	// fails once), and the queue should finish draining without
	// re-running the already-completed InstallFile item.
	if err := q.Drain(dir, runner); err != nil {
		t.Fatalf("Drain() resume error = %v", err)
	}
	if len(runner.ran) != 3 {
		t.Fatalf("ran %d items total, want 3 (no double-apply)", len(runner.ran))
	}
}

func TestQueue_RunVia(t *testing.T) {
	q := NewQueue()
	runner := &recordingRunner{failOn: -1} // no item has Kind -1, so none fails
	batchRunner := q.RunVia(runner)

	dir := scpath.RelativePath("lib")
	items := []Item{
		{Kind: InstallFile, Path: "lib/x.go"},
		{Kind: SyncFileFlags, Path: "lib/x.go"},
	}

	if err := batchRunner.Run(dir, items); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(runner.ran) != 2 {
		t.Fatalf("ran %d items, want 2", len(runner.ran))
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{InstallFile, "install-file"},
		{Move, "move"},
		{Remove, "remove"},
		{SetMtime, "set-mtime"},
		{RecordFileInfo, "record-file-info"},
		{SyncFileFlags, "sync-file-flags"},
		{Merge, "merge"},
		{AddTreeConflict, "add-tree-conflict"},
		{WriteOldPropsFile, "write-old-props-file"},
		{PrepareRevertFiles, "prepare-revert-files"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
