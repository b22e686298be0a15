package editor

import (
	"io"
	"os"

	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

// locateCopySource implements the add-with-history locate step (spec
// §4.3): given the target's repository-relative path and the desired
// copyfrom identity, find a local node that can serve as the copy's
// pristine source instead of refetching over the wire.
//
// The longest-common-ancestor walk degenerates to a direct lookup here:
// since this core's metadata store is keyed by working-copy-relative
// path rather than by repository path resolution (the repository-side
// path-mapping layer is out of scope), the candidate is found by
// rewriting copyFromReposRelPath's suffix beyond the common ancestor
// onto the target's own working-copy directory, then verifying the
// result names a real, compatibly-versioned node.
func locateCopySource(store wcdb.Store, targetDir scpath.RelativePath, targetReposRelPath, copyFromReposRelPath scpath.RelativePath, copyFromRev int64) (scpath.RelativePath, bool, error) {
	suffix := commonAncestorSuffix(targetReposRelPath, copyFromReposRelPath)
	candidate := targetDir
	if suffix != "" {
		candidate = targetDir.Join(suffix.String())
	}

	node, err := store.ReadNode(candidate)
	if err != nil {
		return "", false, err
	}
	if node == nil || node.Base == nil {
		return "", false, nil
	}
	if node.Base.Kind != wcdb.KindFile {
		return "", false, nil
	}
	if node.Base.ReposRelPath != copyFromReposRelPath {
		return "", false, nil
	}

	committedRev := node.Base.LastChange.Revision
	wcRev := node.Base.Revision
	if !(committedRev <= copyFromRev && copyFromRev <= wcRev) {
		return "", false, nil
	}

	return candidate, true, nil
}

// commonAncestorSuffix returns copyFrom's path components beyond its
// longest common prefix with target, joined back into a relative path.
func commonAncestorSuffix(target, copyFrom scpath.RelativePath) scpath.RelativePath {
	targetParts := target.Components()
	copyParts := copyFrom.Components()

	common := 0
	for common < len(targetParts) && common < len(copyParts) && targetParts[common] == copyParts[common] {
		common++
	}

	remainder := copyParts[common:]
	if len(remainder) == 0 {
		return ""
	}
	out := scpath.RelativePath("")
	return out.Join(remainder...)
}

// installCopySource streams sourcePath's pristine text into a new
// pristine-store temporary and records the result on fb, plus a
// preserved-working-text temporary when the source has a WORKING row or
// ACTUAL properties (spec §4.3, "Installation step"). The working file's
// text is not compared with the pristine, so an on-disk edit alone does
// not cause it to be preserved.
func installCopySource(session *Session, fb *FileBaton, sourcePath scpath.RelativePath) error {
	node, err := session.Store.ReadNode(sourcePath)
	if err != nil {
		return err
	}
	if node == nil || node.Base == nil {
		return PathNotFound("add_file", sourcePath.String(), nil)
	}

	stream, present, err := session.Pristine.ReadBySHA1(node.Base.Checksum.SHA1)
	if err != nil {
		return err
	}
	if !present {
		return ObstructedUpdate("add_file", sourcePath.String(), "copy source pristine is missing", nil)
	}
	defer stream.Close()

	writer, tmpPath, checksums, err := session.Pristine.OpenWritable()
	if err != nil {
		return err
	}
	if _, err := io.Copy(writer, stream); err != nil {
		writer.Close()
		session.Pristine.RemoveTemp(tmpPath)
		return err
	}
	if err := writer.Close(); err != nil {
		session.Pristine.RemoveTemp(tmpPath)
		return err
	}

	sum := checksums.Sum()
	if err := session.Pristine.Install(tmpPath, sum); err != nil {
		return err
	}

	fb.NewTextInstalled = true
	fb.NewSHA1 = sum.SHA1
	fb.NewChecksum = sum
	fb.AddedWithHistory = true
	fb.CopySourcePath = sourcePath

	if node.IsShadowed() || (node.Actual != nil && node.Actual.HasProperties) {
		preserveWorkingText(session, fb, sourcePath)
	}
	return nil
}

// preserveWorkingText copies the source's on-disk working text to a
// temporary so close_file can install it as the new working file
// instead of the fresh pristine, preserving local modifications across
// the copy (spec §4.3).
func preserveWorkingText(session *Session, fb *FileBaton, sourcePath scpath.RelativePath) {
	data, err := os.ReadFile(session.absPath(sourcePath).String())
	if err != nil {
		return
	}

	tmp, err := os.CreateTemp("", "svnwc-copytext-*")
	if err != nil {
		return
	}
	defer tmp.Close()
	if _, err := tmp.Write(data); err != nil {
		os.Remove(tmp.Name())
		return
	}
	fb.PreservedWorkingTemp = tmp.Name()
}
