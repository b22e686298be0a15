package config

import (
	"testing"

	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
)

func TestTypedConfig_UpdateDefaults(t *testing.T) {
	tc := NewTypedConfig(NewManager(scpath.RepositoryPath("")))

	if tc.UseCommitTimes() {
		t.Error("UseCommitTimes() = true, want false by default")
	}
	if tc.AllowUnversionedObstructions() {
		t.Error("AllowUnversionedObstructions() = true, want false by default")
	}
	if got := tc.UpdateDepth(); got != "infinity" {
		t.Errorf("UpdateDepth() = %q, want infinity", got)
	}
	if tc.StickyDepth() {
		t.Error("StickyDepth() = true, want false by default")
	}
}

func TestTypedConfig_UpdateOverrides(t *testing.T) {
	manager := NewManager(scpath.RepositoryPath(""))
	manager.SetCommandLine("update.use-commit-times", "true")
	manager.SetCommandLine("update.allow-unversioned-obstructions", "true")
	manager.SetCommandLine("update.depth", "files")
	manager.SetCommandLine("update.sticky-depth", "true")

	tc := NewTypedConfig(manager)
	if !tc.UseCommitTimes() {
		t.Error("UseCommitTimes() = false, want true once overridden")
	}
	if !tc.AllowUnversionedObstructions() {
		t.Error("AllowUnversionedObstructions() = false, want true once overridden")
	}
	if got := tc.UpdateDepth(); got != "files" {
		t.Errorf("UpdateDepth() = %q, want files", got)
	}
	if !tc.StickyDepth() {
		t.Error("StickyDepth() = false, want true once overridden")
	}
}
