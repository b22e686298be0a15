package editor

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Dhanabal/svnwc/pkg/common/fileops"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/workqueue"
)

// fileRunner performs the filesystem side effects of one queued work
// item, dispatching on Kind over its own small closed set of operation
// tags.
type fileRunner struct {
	session *Session
}

func (r *fileRunner) RunOne(dir scpath.RelativePath, item workqueue.Item) error {
	target, err := r.absPath(item.Path)
	if err != nil {
		return err
	}

	switch item.Kind {
	case workqueue.InstallFile:
		return r.installFile(item, target)
	case workqueue.Move:
		return r.move(item, target)
	case workqueue.Remove:
		return r.remove(target)
	case workqueue.SetMtime:
		return r.setMtime(item, target)
	case workqueue.RecordFileInfo:
		return nil // no mtime/size snapshot is taken; BASE's RecordedMtime/RecordedSize stay unset
	case workqueue.SyncFileFlags:
		return r.syncFlags(item, target)
	case workqueue.Merge:
		return r.merge(item, target)
	case workqueue.AddTreeConflict:
		return nil // conflict record was already stamped on the ACTUAL row by CommitNode
	case workqueue.WriteOldPropsFile:
		return r.writeOldPropsFile(item, target)
	case workqueue.PrepareRevertFiles:
		return r.prepareRevertFiles(item, target)
	default:
		return MalformedStream("work_queue_run", item.Path.String(), fmt.Sprintf("unknown work item kind %d", item.Kind))
	}
}

func (r *fileRunner) absPath(path scpath.RelativePath) (scpath.AbsolutePath, error) {
	if !scpath.IsPathSafe(path.String()) {
		return "", ObstructedUpdate("work_queue_run", path.String(), "path escapes the working copy", nil)
	}
	return r.session.absPath(path), nil
}

func (r *fileRunner) installFile(item workqueue.Item, target scpath.AbsolutePath) error {
	if item.SourceTemp != "" {
		return r.installFromTemp(item.SourceTemp, target)
	}

	stream, present, err := r.session.Pristine.ReadBySHA1(item.SourceSHA1)
	if err != nil {
		return fmt.Errorf("install file %s: %w", item.Path, err)
	}
	if !present {
		return ObstructedUpdate("install_file", item.Path.String(), "referenced pristine is missing", nil)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("read pristine for %s: %w", item.Path, err)
	}
	if err := fileops.EnsureParentDir(target); err != nil {
		return err
	}
	return fileops.AtomicWrite(target, data, 0o644)
}

func (r *fileRunner) installFromTemp(tmpPath string, target scpath.AbsolutePath) error {
	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("read temp %s: %w", tmpPath, err)
	}
	if err := fileops.EnsureParentDir(target); err != nil {
		return err
	}
	if err := fileops.AtomicWrite(target, data, 0o644); err != nil {
		return err
	}
	return os.Remove(tmpPath)
}

func (r *fileRunner) move(item workqueue.Item, target scpath.AbsolutePath) error {
	destRel, err := scpath.NewRelativePath(item.DestPath)
	if err != nil {
		return fmt.Errorf("move destination %s: %w", item.DestPath, err)
	}
	dest := r.session.absPath(destRel)
	if err := fileops.EnsureParentDir(dest); err != nil {
		return err
	}
	if err := os.Rename(target.String(), dest.String()); err != nil {
		return fmt.Errorf("move %s to %s: %w", item.Path, item.DestPath, err)
	}
	return nil
}

func (r *fileRunner) remove(target scpath.AbsolutePath) error {
	if err := os.Remove(target.String()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", target, err)
	}
	return nil
}

func (r *fileRunner) setMtime(item workqueue.Item, target scpath.AbsolutePath) error {
	info, err := os.Stat(target.String())
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	mtime := time.Now()
	if item.UseCommitTime {
		mtime = info.ModTime()
	}
	return os.Chtimes(target.String(), mtime, mtime)
}

func (r *fileRunner) syncFlags(item workqueue.Item, target scpath.AbsolutePath) error {
	info, err := os.Stat(target.String())
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	mode := info.Mode()
	if item.Description == "executable" {
		mode |= 0o111
	} else {
		mode &^= 0o111
	}
	return os.Chmod(target.String(), mode)
}

// merge runs a three-way text merge of old/new/working temps, installing
// the clean result. A conflicting hunk is not a failure: its markers are
// written into the target file alongside the mine/theirs sidecar files,
// and the path is marked on the session so CloseFile can record the
// conflict on the node's ACTUAL row once the work queue has returned
// (spec §4.4 — a text conflict is recorded, not raised as an error).
func (r *fileRunner) merge(item workqueue.Item, target scpath.AbsolutePath) error {
	working, err := os.ReadFile(item.MergeWorkingTemp)
	if err != nil {
		working = nil
	}

	var older []byte
	if item.MergeOldTemp != "" {
		older, _ = os.ReadFile(item.MergeOldTemp)
		defer os.Remove(item.MergeOldTemp)
	}

	stream, present, err := r.session.Pristine.ReadBySHA1(item.SourceSHA1)
	if err != nil {
		return fmt.Errorf("read merge target pristine for %s: %w", item.Path, err)
	}
	if !present {
		return ObstructedUpdate("merge_file", item.Path.String(), "new pristine is missing", nil)
	}
	newer, err := io.ReadAll(stream)
	stream.Close()
	if err != nil {
		return fmt.Errorf("read merge target pristine for %s: %w", item.Path, err)
	}

	merged, conflicted := threeWayMerge(older, working, newer)
	if err := fileops.EnsureParentDir(target); err != nil {
		return err
	}
	if err := fileops.AtomicWrite(target, merged, 0o644); err != nil {
		return err
	}

	if conflicted {
		if err := r.writeConflictSidecar(item.ConflictMineLabel, working); err != nil {
			return err
		}
		if err := r.writeConflictSidecar(item.ConflictTheirLabel, newer); err != nil {
			return err
		}
		r.session.markTextConflict(item.Path)
	}
	return nil
}

// writeConflictSidecar writes content to label, a path string relative
// to the working copy root (e.g. "a.txt.mine"). A blank label is a
// no-op, for callers that don't name a sidecar.
func (r *fileRunner) writeConflictSidecar(label string, content []byte) error {
	if label == "" {
		return nil
	}
	rel, err := scpath.NewRelativePath(label)
	if err != nil {
		return fmt.Errorf("conflict sidecar path %s: %w", label, err)
	}
	dest := r.session.absPath(rel)
	if err := fileops.EnsureParentDir(dest); err != nil {
		return err
	}
	return fileops.AtomicWrite(dest, content, 0o644)
}

func (r *fileRunner) writeOldPropsFile(item workqueue.Item, target scpath.AbsolutePath) error {
	if err := fileops.EnsureParentDir(target); err != nil {
		return err
	}
	return fileops.WriteConfigString(target, item.Description)
}

func (r *fileRunner) prepareRevertFiles(item workqueue.Item, target scpath.AbsolutePath) error {
	data, err := os.ReadFile(target.String())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("snapshot revert base for %s: %w", item.Path, err)
	}
	dest, err := scpath.NewRelativePath(item.DestPath)
	if err != nil {
		return fmt.Errorf("revert snapshot destination %s: %w", item.DestPath, err)
	}
	destPath := r.session.absPath(dest)
	if err := fileops.EnsureParentDir(destPath); err != nil {
		return err
	}
	return fileops.AtomicWrite(destPath, data, 0o644)
}

// threeWayMerge is a line-oriented merge, the same shape GNU diff3
// produces: hunks where only one side changed a line range are taken
// from that side, hunks where both sides made the identical change are
// taken once, and only hunks where the two sides genuinely diverge are
// wrapped in conflict marker text. Non-conflicting hunks elsewhere in
// the same file still combine cleanly.
func threeWayMerge(older, working, newer []byte) (result []byte, conflicted bool) {
	if working == nil || string(working) == string(older) {
		return newer, false
	}
	if string(working) == string(newer) {
		return newer, false
	}

	olderLines := splitLines(older)
	workingHunks := diffHunks(olderLines, splitLines(working))
	newerHunks := diffHunks(olderLines, splitLines(newer))

	mergedLines, conflicted := mergeHunks(olderLines, workingHunks, newerHunks)
	return joinLines(mergedLines), conflicted
}

// editHunk is a contiguous run of older's lines, [oldStart, oldEnd),
// replaced by lines from one modified side.
type editHunk struct {
	oldStart, oldEnd int
	lines            []string
}

// diffHunks finds the edits that turn older into modified, expressed as
// the minimal set of replaced line ranges implied by their longest
// common subsequence.
func diffHunks(older, modified []string) []editHunk {
	matches := lcsMatches(older, modified)

	var hunks []editHunk
	prevOld, prevNew := 0, 0
	for _, m := range matches {
		oi, mi := m[0], m[1]
		if oi > prevOld || mi > prevNew {
			hunks = append(hunks, editHunk{
				oldStart: prevOld,
				oldEnd:   oi,
				lines:    append([]string(nil), modified[prevNew:mi]...),
			})
		}
		prevOld, prevNew = oi+1, mi+1
	}
	if prevOld < len(older) || prevNew < len(modified) {
		hunks = append(hunks, editHunk{
			oldStart: prevOld,
			oldEnd:   len(older),
			lines:    append([]string(nil), modified[prevNew:]...),
		})
	}
	return hunks
}

// lcsMatches returns, in order, the (a-index, b-index) pairs of an
// optimal longest common subsequence of a and b.
func lcsMatches(a, b []string) [][2]int {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				dp[i][j] = dp[i+1][j+1] + 1
			case dp[i+1][j] >= dp[i][j+1]:
				dp[i][j] = dp[i+1][j]
			default:
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	var matches [][2]int
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			matches = append(matches, [2]int{i, j})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			i++
		default:
			j++
		}
	}
	return matches
}

// mergeHunks walks older's line numbers, applying workingHunks and
// newerHunks wherever they touch. A hunk that only one side produced is
// taken as-is; hunks both sides produced at the same position are taken
// once if identical, otherwise wrapped in conflict markers.
func mergeHunks(older []string, workingHunks, newerHunks []editHunk) ([]string, bool) {
	var result []string
	conflicted := false
	wi, ni, pos := 0, 0, 0

	for pos < len(older) || wi < len(workingHunks) || ni < len(newerHunks) {
		var w, nw *editHunk
		if wi < len(workingHunks) && workingHunks[wi].oldStart == pos {
			w = &workingHunks[wi]
		}
		if ni < len(newerHunks) && newerHunks[ni].oldStart == pos {
			nw = &newerHunks[ni]
		}

		switch {
		case w != nil && nw != nil:
			if stringsEqual(w.lines, nw.lines) {
				result = append(result, w.lines...)
			} else {
				conflicted = true
				result = append(result, "<<<<<<< working\n")
				result = append(result, w.lines...)
				result = append(result, "=======\n")
				result = append(result, nw.lines...)
				result = append(result, ">>>>>>> incoming\n")
			}
			pos = max(w.oldEnd, nw.oldEnd)
			wi++
			ni++
		case w != nil:
			result = append(result, w.lines...)
			pos = w.oldEnd
			wi++
		case nw != nil:
			result = append(result, nw.lines...)
			pos = nw.oldEnd
			ni++
		default:
			result = append(result, older[pos])
			pos++
		}
	}
	return result, conflicted
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// splitLines breaks data into lines, each retaining its own trailing
// newline so joinLines can reassemble the original bytes exactly.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i+1]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

func joinLines(lines []string) []byte {
	var out []byte
	for _, l := range lines {
		out = append(out, l...)
	}
	return out
}
