package editor

import (
	"io"
	"os"

	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/workqueue"
)

// mergePlan is merge_file's output (spec §4.4): whether the working file
// must be overwritten, and from what source.
type mergePlan struct {
	InstallPristine bool
	InstallFrom     string // empty means "install from the new pristine by SHA1"
	ContentState    ContentState
	WorkItems       []workqueue.Item
}

// planTextInstall decides how to reconcile a file's new pristine text
// (if any) with its current working file and local modifications.
// fb.NewTextInstalled is false when close_file ran with no
// apply_textdelta call (a pure property-only update). oldBaseSHA1 is the
// node's pre-update BASE checksum, used as the merge's common ancestor
// when a three-way merge is required.
func planTextInstall(session *Session, fb *FileBaton, oldBaseSHA1 objects.ObjectHash, locallyModified, obstructionAllowed, workingFileExists bool) mergePlan {
	if !fb.NewTextInstalled {
		return mergePlan{ContentState: ContentUnchanged}
	}

	if fb.PreservedWorkingTemp != "" {
		return mergePlan{InstallPristine: true, InstallFrom: fb.PreservedWorkingTemp, ContentState: ContentMerged}
	}

	switch {
	case fb.scheduledReplace:
		return mergePlan{InstallPristine: true, ContentState: ContentChanged}
	case !workingFileExists && !fb.AddedWithHistory:
		return mergePlan{InstallPristine: true, ContentState: ContentChanged}
	case !locallyModified:
		return mergePlan{InstallPristine: true, ContentState: ContentChanged}
	case obstructionAllowed:
		return mergePlan{InstallPristine: true, ContentState: ContentMerged}
	default:
		// The merge work item installs its own result (clean merge or
		// conflict markers), so no separate plain InstallFile item runs.
		item, state := buildMergeItem(session, fb, oldBaseSHA1)
		return mergePlan{ContentState: state, WorkItems: []workqueue.Item{item}}
	}
}

// buildMergeItem constructs the deferred three-way merge work item for a
// locally modified file receiving a new pristine. The conflict sidecar
// files are named by appending ".mine" and ".r-new" to the working path,
// so the file's own extension is no longer the last one in their names.
func buildMergeItem(session *Session, fb *FileBaton, oldBaseSHA1 objects.ObjectHash) (workqueue.Item, ContentState) {
	base := fb.Path.String()
	item := workqueue.Item{
		Kind:               workqueue.Merge,
		Path:               fb.Path,
		SourceSHA1:         fb.NewSHA1,
		MergeWorkingTemp:   session.absPath(fb.Path).String(),
		ConflictMineLabel:  base + ".mine",
		ConflictTheirLabel: base + ".r-new",
		Description:        "merge",
	}
	if oldBaseSHA1 != "" {
		if tmp, err := writePristineToTemp(session, oldBaseSHA1); err == nil {
			item.MergeOldTemp = tmp
		}
	}
	return item, ContentMerged
}

// writePristineToTemp copies a pristine text out to a plain temporary
// file so the work-queue runner can read it with a simple os.ReadFile,
// the same way add-with-history's preserved-working-text temp works.
func writePristineToTemp(session *Session, sha1 objects.ObjectHash) (string, error) {
	stream, present, err := session.Pristine.ReadBySHA1(sha1)
	if err != nil {
		return "", err
	}
	if !present {
		return "", os.ErrNotExist
	}
	defer stream.Close()

	tmp, err := os.CreateTemp("", "svnwc-mergebase-*")
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if _, err := io.Copy(tmp, stream); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
