package editor

import (
	"os"
	"testing"

	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/workqueue"
)

func TestPlanTextInstall_NoTextDeltaIsUnchanged(t *testing.T) {
	session := newTestSession(t, Config{})
	fb := &FileBaton{Path: "a.txt"}

	plan := planTextInstall(session, fb, "", false, false, true)
	if plan.ContentState != ContentUnchanged {
		t.Errorf("ContentState = %v, want ContentUnchanged", plan.ContentState)
	}
	if plan.InstallPristine {
		t.Error("InstallPristine = true when apply_textdelta never ran")
	}
}

func TestPlanTextInstall_AddWithHistoryPreservedTextIsMerged(t *testing.T) {
	session := newTestSession(t, Config{})
	fb := &FileBaton{Path: "a.txt", NewTextInstalled: true, PreservedWorkingTemp: "/tmp/preserved-xyz"}

	plan := planTextInstall(session, fb, "", true, false, true)
	if !plan.InstallPristine || plan.InstallFrom != "/tmp/preserved-xyz" {
		t.Errorf("plan = %+v, want InstallPristine from the preserved working temp", plan)
	}
	if plan.ContentState != ContentMerged {
		t.Errorf("ContentState = %v, want ContentMerged", plan.ContentState)
	}
}

func TestPlanTextInstall_ScheduledReplaceOverwritesUnconditionally(t *testing.T) {
	session := newTestSession(t, Config{})
	fb := &FileBaton{Path: "a.txt", NewTextInstalled: true, scheduledReplace: true}

	plan := planTextInstall(session, fb, "", true, false, true)
	if !plan.InstallPristine {
		t.Error("InstallPristine = false for a scheduled replace")
	}
	if plan.ContentState != ContentChanged {
		t.Errorf("ContentState = %v, want ContentChanged", plan.ContentState)
	}
}

func TestPlanTextInstall_MissingWorkingFileInstallsPlainly(t *testing.T) {
	session := newTestSession(t, Config{})
	fb := &FileBaton{Path: "a.txt", NewTextInstalled: true}

	plan := planTextInstall(session, fb, "", false, false, false)
	if !plan.InstallPristine {
		t.Error("InstallPristine = false when the working file doesn't exist")
	}
	if plan.ContentState != ContentChanged {
		t.Errorf("ContentState = %v, want ContentChanged", plan.ContentState)
	}
}

func TestPlanTextInstall_UnmodifiedWorkingFileInstallsPlainly(t *testing.T) {
	session := newTestSession(t, Config{})
	fb := &FileBaton{Path: "a.txt", NewTextInstalled: true}

	plan := planTextInstall(session, fb, "", false, false, true)
	if !plan.InstallPristine {
		t.Error("InstallPristine = false for an unmodified working file")
	}
	if plan.ContentState != ContentChanged {
		t.Errorf("ContentState = %v, want ContentChanged", plan.ContentState)
	}
}

func TestPlanTextInstall_ObstructionAllowedOverwrites(t *testing.T) {
	session := newTestSession(t, Config{})
	fb := &FileBaton{Path: "a.txt", NewTextInstalled: true}

	plan := planTextInstall(session, fb, "", true, true, true)
	if !plan.InstallPristine {
		t.Error("InstallPristine = false when obstruction overwrite is allowed")
	}
	if plan.ContentState != ContentMerged {
		t.Errorf("ContentState = %v, want ContentMerged", plan.ContentState)
	}
}

func TestPlanTextInstall_LocallyModifiedDefersToMergeWorkItem(t *testing.T) {
	session := newTestSession(t, Config{})
	content := []byte("new pristine text\n")
	sum := installPristineText(t, session, content)
	fb := &FileBaton{Path: "a.txt", NewTextInstalled: true, NewSHA1: sum.SHA1}

	plan := planTextInstall(session, fb, "", true, false, true)
	if plan.InstallPristine {
		t.Error("InstallPristine = true for a locally modified file, want the merge item to install its own result")
	}
	if plan.ContentState != ContentMerged {
		t.Errorf("ContentState = %v, want ContentMerged", plan.ContentState)
	}
	if len(plan.WorkItems) != 1 || plan.WorkItems[0].Kind != workqueue.Merge {
		t.Fatalf("WorkItems = %+v, want exactly one Merge item", plan.WorkItems)
	}
	if plan.WorkItems[0].SourceSHA1 != sum.SHA1 {
		t.Errorf("Merge item SourceSHA1 = %v, want %v", plan.WorkItems[0].SourceSHA1, sum.SHA1)
	}
	if plan.WorkItems[0].ConflictMineLabel != "a.txt.mine" {
		t.Errorf("ConflictMineLabel = %q, want a.txt.mine", plan.WorkItems[0].ConflictMineLabel)
	}
	if plan.WorkItems[0].ConflictTheirLabel != "a.txt.r-new" {
		t.Errorf("ConflictTheirLabel = %q, want a.txt.r-new", plan.WorkItems[0].ConflictTheirLabel)
	}
}

func TestBuildMergeItem_WritesOldBaseToTempWhenPresent(t *testing.T) {
	session := newTestSession(t, Config{})
	oldSum := installPristineText(t, session, []byte("old base text\n"))
	newSum := installPristineText(t, session, []byte("new pristine text\n"))
	fb := &FileBaton{Path: "a.txt", NewSHA1: newSum.SHA1}

	item, state := buildMergeItem(session, fb, oldSum.SHA1)
	if state != ContentMerged {
		t.Errorf("state = %v, want ContentMerged", state)
	}
	if item.MergeOldTemp == "" {
		t.Fatal("MergeOldTemp = empty, want a temp file path for the common ancestor")
	}
	defer os.Remove(item.MergeOldTemp)

	got, err := os.ReadFile(item.MergeOldTemp)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "old base text\n" {
		t.Errorf("MergeOldTemp content = %q, want %q", got, "old base text\n")
	}
}

func TestBuildMergeItem_NoOldBaseLeavesTempEmpty(t *testing.T) {
	session := newTestSession(t, Config{})
	newSum := installPristineText(t, session, []byte("new pristine text\n"))
	fb := &FileBaton{Path: "a.txt", NewSHA1: newSum.SHA1}

	item, _ := buildMergeItem(session, fb, "")
	if item.MergeOldTemp != "" {
		t.Errorf("MergeOldTemp = %q, want empty with no common ancestor", item.MergeOldTemp)
	}
}

func TestWritePristineToTemp_RoundTrips(t *testing.T) {
	session := newTestSession(t, Config{})
	content := []byte("round trip content\n")
	sum := installPristineText(t, session, content)

	tmp, err := writePristineToTemp(session, sum.SHA1)
	if err != nil {
		t.Fatalf("writePristineToTemp() error = %v", err)
	}
	defer os.Remove(tmp)

	got, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("temp content = %q, want %q", got, content)
	}
}

func TestWritePristineToTemp_AbsentSourceErrors(t *testing.T) {
	session := newTestSession(t, Config{})
	if _, err := writePristineToTemp(session, objects.ObjectHash("deadbeef")); err == nil {
		t.Error("writePristineToTemp() error = nil for an absent pristine, want an error")
	}
}
