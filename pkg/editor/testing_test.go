package editor

import (
	"testing"

	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/store"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

// newTestSession builds a session rooted at a fresh temp directory, wired
// to an in-memory metadata store and a real file-backed pristine store,
// with no callbacks set (a no-op cancel/notify/resolve/fetch set).
func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	root, err := scpath.NewAbsolutePath(t.TempDir())
	if err != nil {
		t.Fatalf("NewAbsolutePath() error = %v", err)
	}
	pristine, err := store.NewFilePristineStore(root)
	if err != nil {
		t.Fatalf("NewFilePristineStore() error = %v", err)
	}
	session, err := NewSession(root, "", "", "https://example.com/repo", "uuid-1", "", "", cfg, Callbacks{}, wcdb.NewMemStore(), pristine)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return session
}
