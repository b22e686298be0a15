package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

func TestDriver_OpenRoot_MarksIncomplete(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)

	if _, err := driver.OpenRoot(5); err != nil {
		t.Fatalf("OpenRoot() error = %v", err)
	}
	if !session.rootOpened {
		t.Error("session.rootOpened = false after OpenRoot")
	}

	node, err := session.Store.ReadNode(session.Anchor)
	if err != nil {
		t.Fatalf("ReadNode() error = %v", err)
	}
	if node == nil || node.Base == nil || node.Base.Status != wcdb.BaseIncomplete {
		t.Fatalf("anchor node = %+v, want a BaseIncomplete BASE row", node)
	}
}

func TestDriver_OpenRoot_SkipsAlreadyConflictedAnchor(t *testing.T) {
	session := newTestSession(t, Config{})
	session.Store.CommitNode(wcdb.NodeWrite{
		Path:   session.Anchor,
		Base:   &wcdb.BaseRow{Status: wcdb.BaseNormal, Kind: wcdb.KindDir},
		Actual: &wcdb.ActualRow{TextConflict: true},
	}, nil)

	var notifications []Notification
	session.Callbacks.Notify = func(n Notification) { notifications = append(notifications, n) }

	driver := NewDriver(session)
	root, err := driver.OpenRoot(5)
	if err != nil {
		t.Fatalf("OpenRoot() error = %v", err)
	}
	if !root.Skipped {
		t.Error("root.Skipped = false for a pre-conflicted anchor")
	}
	if len(notifications) != 1 || notifications[0].Action != NotifySkip {
		t.Errorf("notifications = %+v, want exactly one NotifySkip", notifications)
	}
}

func TestDriver_AddDirectoryThenCloseDirectory(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)

	root, err := driver.OpenRoot(5)
	if err != nil {
		t.Fatalf("OpenRoot() error = %v", err)
	}
	if err := driver.SetTargetRevision(5); err != nil {
		t.Fatalf("SetTargetRevision() error = %v", err)
	}

	sub, err := driver.AddDirectory(root, "sub", "", 0)
	if err != nil {
		t.Fatalf("AddDirectory() error = %v", err)
	}

	if info, err := os.Stat(filepath.Join(session.WCRoot.String(), "sub")); err != nil || !info.IsDir() {
		t.Fatalf("sub directory not created on disk: %v", err)
	}

	if err := driver.ChangeDirProp(sub, "svn:ignore", strPtr("*.o")); err != nil {
		t.Fatalf("ChangeDirProp() error = %v", err)
	}
	if err := driver.CloseDirectory(sub); err != nil {
		t.Fatalf("CloseDirectory(sub) error = %v", err)
	}

	node, err := session.Store.ReadNode("sub")
	if err != nil {
		t.Fatalf("ReadNode(sub) error = %v", err)
	}
	if node == nil || node.Base == nil || node.Base.Status != wcdb.BaseNormal {
		t.Fatalf("sub node = %+v, want a BaseNormal BASE row after close_directory", node)
	}
	if node.Base.Properties["svn:ignore"] != "*.o" {
		t.Errorf("sub properties = %v, want svn:ignore=*.o", node.Base.Properties)
	}

	if err := driver.CloseDirectory(root); err != nil {
		t.Fatalf("CloseDirectory(root) error = %v", err)
	}
	if err := driver.CloseEdit(); err != nil {
		t.Fatalf("CloseEdit() error = %v", err)
	}
}

func TestDriver_AddDirectory_RejectsCopyFrom(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)
	root, err := driver.OpenRoot(5)
	if err != nil {
		t.Fatalf("OpenRoot() error = %v", err)
	}

	_, err = driver.AddDirectory(root, "sub", "https://example.com/repo/other", 3)
	if err == nil {
		t.Fatal("AddDirectory() with copyfrom error = nil, want UnsupportedFeature")
	}
	if !IsCode(err, CodeUnsupportedFeature) {
		t.Errorf("AddDirectory() error = %v, want CodeUnsupportedFeature", err)
	}
}

func TestDriver_AddFileAndCloseFile_NoTextDelta(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)
	root, err := driver.OpenRoot(5)
	if err != nil {
		t.Fatalf("OpenRoot() error = %v", err)
	}
	if err := driver.SetTargetRevision(5); err != nil {
		t.Fatalf("SetTargetRevision() error = %v", err)
	}

	var notifications []Notification
	session.Callbacks.Notify = func(n Notification) { notifications = append(notifications, n) }

	fb, err := driver.AddFile(root, "README.txt", "", 0)
	if err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}
	if err := driver.ChangeFileProp(fb, "svn:mime-type", strPtr("text/plain")); err != nil {
		t.Fatalf("ChangeFileProp() error = %v", err)
	}
	if err := driver.CloseFile(fb, ""); err != nil {
		t.Fatalf("CloseFile() error = %v", err)
	}

	if len(notifications) != 1 || notifications[0].Action != NotifyUpdateAdd {
		t.Fatalf("notifications = %+v, want one NotifyUpdateAdd", notifications)
	}
	if notifications[0].ContentState != ContentUnchanged {
		t.Errorf("ContentState = %v, want ContentUnchanged (no apply_textdelta call)", notifications[0].ContentState)
	}

	node, err := session.Store.ReadNode("README.txt")
	if err != nil {
		t.Fatalf("ReadNode() error = %v", err)
	}
	if node == nil || node.Base == nil || node.Base.Properties["svn:mime-type"] != "text/plain" {
		t.Fatalf("node = %+v, want svn:mime-type recorded", node)
	}
}

func TestDriver_AddFileWithTextDelta_InstallsContent(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)
	root, err := driver.OpenRoot(5)
	if err != nil {
		t.Fatalf("OpenRoot() error = %v", err)
	}
	if err := driver.SetTargetRevision(7); err != nil {
		t.Fatalf("SetTargetRevision() error = %v", err)
	}

	fb, err := driver.AddFile(root, "hello.txt", "", 0)
	if err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}

	handler, err := driver.ApplyTextdelta(fb, "")
	if err != nil {
		t.Fatalf("ApplyTextdelta() error = %v", err)
	}
	content := []byte("hello, working copy\n")
	if err := handler(TextDeltaWindow{Data: content}); err != nil {
		t.Fatalf("handler(window) error = %v", err)
	}
	if err := handler(TextDeltaWindow{Final: true}); err != nil {
		t.Fatalf("handler(final) error = %v", err)
	}

	var notifications []Notification
	session.Callbacks.Notify = func(n Notification) { notifications = append(notifications, n) }

	if err := driver.CloseFile(fb, ""); err != nil {
		t.Fatalf("CloseFile() error = %v", err)
	}

	if len(notifications) != 1 || notifications[0].ContentState != ContentChanged {
		t.Fatalf("notifications = %+v, want one ContentChanged notification", notifications)
	}

	got, err := os.ReadFile(filepath.Join(session.WCRoot.String(), "hello.txt"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("installed content = %q, want %q", got, content)
	}
}

func TestDriver_DeleteEntry_QueuesRemoveForUnmodifiedFile(t *testing.T) {
	session := newTestSession(t, Config{})
	session.Store.CommitNode(wcdb.NodeWrite{
		Path: "old.txt",
		Base: &wcdb.BaseRow{Status: wcdb.BaseNormal, Kind: wcdb.KindFile},
	}, nil)
	if err := os.WriteFile(filepath.Join(session.WCRoot.String(), "old.txt"), []byte("stale"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	driver := NewDriver(session)
	root, err := driver.OpenRoot(5)
	if err != nil {
		t.Fatalf("OpenRoot() error = %v", err)
	}
	if err := driver.SetTargetRevision(6); err != nil {
		t.Fatalf("SetTargetRevision() error = %v", err)
	}

	if err := driver.DeleteEntry(root, "old.txt", 5); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	// The delete_entry work item is only drained once close_directory
	// runs its own work queue item for this directory.
	if err := driver.CloseDirectory(root); err != nil {
		t.Fatalf("CloseDirectory() error = %v", err)
	}

	node, err := session.Store.ReadNode("old.txt")
	if err != nil {
		t.Fatalf("ReadNode() error = %v", err)
	}
	if node != nil {
		t.Errorf("node = %+v, want deleted from the store", node)
	}
	if _, err := os.Stat(filepath.Join(session.WCRoot.String(), "old.txt")); !os.IsNotExist(err) {
		t.Errorf("old.txt still exists on disk after close_directory's work queue ran: err = %v", err)
	}
}

func TestDriver_CloseEdit_WithoutOpenRoot(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)
	if err := driver.CloseEdit(); err != nil {
		t.Fatalf("CloseEdit() error = %v", err)
	}
	if !session.closeComplete {
		t.Error("session.closeComplete = false after CloseEdit with no OpenRoot call")
	}
}
