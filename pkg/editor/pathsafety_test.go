package editor

import (
	"testing"

	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
)

func TestSafeJoin_Valid(t *testing.T) {
	got, err := safeJoin("add_file", scpath.RelativePath("src"), "main.go")
	if err != nil {
		t.Fatalf("safeJoin() error = %v", err)
	}
	if got != "src/main.go" {
		t.Errorf("safeJoin() = %q, want src/main.go", got)
	}
}

func TestSafeJoin_RejectsInvalidComponents(t *testing.T) {
	tests := []struct {
		name string
	}{
		{name: ""},
		{name: "."},
		{name: ".."},
		{name: administrativeDirName},
		{name: `weird\name`},
	}
	for _, tt := range tests {
		if _, err := safeJoin("add_file", scpath.RelativePath("src"), tt.name); err == nil {
			t.Errorf("safeJoin(%q) error = nil, want an error", tt.name)
		}
	}
}

func TestSafeJoin_RejectsEscapingParent(t *testing.T) {
	// A parent that already escaped (shouldn't occur via safeJoin chains,
	// but defends against a malformed caller) still must not produce a
	// path IsPathSafe would accept.
	if _, err := safeJoin("add_file", scpath.RelativePath("../outside"), "f.txt"); err == nil {
		t.Error("safeJoin() error = nil for a parent outside the anchor, want an error")
	}
}
