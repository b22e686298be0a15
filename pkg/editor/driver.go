package editor

import (
	"os"
	"sort"
	"strings"

	"github.com/Dhanabal/svnwc/pkg/classifier"
	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
	"github.com/Dhanabal/svnwc/pkg/workqueue"
)

// Driver is the state-bearing editor callback set (spec §4.2): the
// fifteen operations a caller drives in well-formed nesting order to
// integrate an incoming change into the working copy.
type Driver struct {
	session *Session
}

// NewDriver wraps session, ready to receive editor operations starting
// with SetTargetRevision/OpenRoot.
func NewDriver(session *Session) *Driver {
	return &Driver{session: session}
}

// SetTargetRevision stores the revision the whole edit is bringing the
// working copy to.
func (d *Driver) SetTargetRevision(rev int64) error {
	return d.session.SetTargetRevision(rev)
}

// OpenRoot opens the anchor directory, the root of every subsequent
// operation.
func (d *Driver) OpenRoot(baseRev int64) (*DirBaton, error) {
	if err := d.session.checkCancel("open_root", d.session.Anchor.String()); err != nil {
		return nil, err
	}
	d.session.rootOpened = true

	reposRelPath := d.session.resolveReposRelPath(d.session.Anchor)
	node, err := d.session.Store.ReadNode(d.session.Anchor)
	if err != nil {
		return nil, err
	}

	root := newDirBaton(d.session, nil, d.session.Anchor, reposRelPath, baseRev, false)
	d.session.rootBaton = root

	if node != nil && node.Actual.HasAnyConflict() {
		root.Skipped = true
		root.Tracker.MarkSkipped()
		notify(d.session.Callbacks, Notification{
			Path:   d.session.Anchor.Join(d.session.TargetBasename),
			Action: NotifySkip,
			Kind:   wcdb.KindDir,
		})
		return root, nil
	}

	if d.session.Anchor.Join(d.session.TargetBasename) == d.session.Anchor || d.session.TargetBasename == "" {
		root.markIncomplete()
	}
	return root, nil
}

// DeleteEntry removes name from parent, or raises/records a tree
// conflict per the classifier's verdict (spec §4.2, delete_entry).
func (d *Driver) DeleteEntry(parent *DirBaton, name string, rev int64) error {
	path, err := safeJoin("delete_entry", parent.Path, name)
	if err != nil {
		return err
	}
	if err := d.session.checkCancel("delete_entry", path.String()); err != nil {
		return err
	}
	if parent.Skipped {
		return nil
	}

	node, err := d.session.Store.ReadNode(path)
	if err != nil {
		return err
	}

	result, err := classifier.Classify(ensureContext(), classifier.Input{
		Node:                    node,
		OnDiskKind:              onDiskKind(d.session, path),
		UnderConflictedAncestor: parent.inConflictedSubtree(),
		Incoming: classifier.Incoming{
			Action:       classifier.ActionDelete,
			Kind:         wcdb.KindUnknown,
			ReposRoot:    d.session.AnchorReposRoot,
			ReposRelPath: parent.ReposRelPath.Join(name),
			Revision:     d.session.TargetRevision(),
		},
	}, d.session.newDirModWalk())
	if err != nil {
		return err
	}

	switch result.Verdict {
	case classifier.SkipAlreadyConflicted, classifier.SkipObstructed:
		return nil
	case classifier.VerdictTreeConflict:
		d.session.addSkippedTree(path)
		d.recordTreeConflict(parent, path, result)
		if result.Reason == wcdb.ReasonEdited || result.Reason == wcdb.ReasonReplaced {
			d.session.Queue.Append(parent.Path, workqueue.Item{
				Kind:        workqueue.Move,
				Path:        path,
				DestPath:    path.String() + ".preserved",
				Description: "preserve pre-delete content",
			})
			return nil
		}
		// reason == deleted: fall through to a plain delete.
	}

	isTarget := d.session.TargetBasename != "" && name == d.session.TargetBasename && parent.Path == d.session.Anchor
	if isTarget {
		if err := d.session.Store.CommitNode(wcdb.NodeWrite{
			Path: path,
			Base: &wcdb.BaseRow{Status: wcdb.BaseNotPresent, Revision: d.session.TargetRevision()},
		}, d.session.Runner); err != nil {
			return err
		}
	} else if d.session.IsSwitch() {
		if err := d.session.Store.DeleteNode(path); err != nil {
			return err
		}
	} else {
		d.session.Queue.Append(parent.Path, workqueue.Item{Kind: workqueue.Remove, Path: path, Description: "delete_entry"})
		if err := d.session.Store.DeleteNode(path); err != nil {
			return err
		}
	}

	notify(d.session.Callbacks, Notification{Path: path, Action: NotifyUpdateDelete})
	return nil
}

// AddDirectory creates name beneath parent. copyfrom is unconditionally
// rejected (spec §9 Open Question decision 3).
func (d *Driver) AddDirectory(parent *DirBaton, name string, copyFromURL string, copyFromRev int64) (*DirBaton, error) {
	if copyFromURL != "" {
		return nil, UnsupportedFeature("add_directory", parent.Path.Join(name).String(), "directory copyfrom is not supported")
	}
	path, err := safeJoin("add_directory", parent.Path, name)
	if err != nil {
		return nil, err
	}
	if err := d.session.checkCancel("add_directory", path.String()); err != nil {
		return nil, err
	}

	if parent.Skipped {
		db := newDirBaton(d.session, parent, path, parent.ReposRelPath.Join(name), 0, true)
		db.Skipped = true
		db.Tracker.MarkSkipped()
		return db, nil
	}

	onDisk := onDiskKind(d.session, path)
	node, err := d.session.Store.ReadNode(path)
	if err != nil {
		return nil, err
	}

	if err := d.resolveAddObstruction(path, onDisk, node, wcdb.KindDir); err != nil {
		return nil, err
	}

	depth := d.childDepth(parent, name)
	db := newDirBaton(d.session, parent, path, parent.ReposRelPath.Join(name), 0, true)
	db.Depth = depth

	if err := d.session.Store.CommitNode(wcdb.NodeWrite{
		Path: path,
		Base: &wcdb.BaseRow{Status: wcdb.BaseIncomplete, Kind: wcdb.KindDir, Revision: d.session.TargetRevision()},
	}, nil); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(d.session.absPath(path).String(), 0o755); err != nil && !os.IsExist(err) {
		return nil, ObstructedUpdate("add_directory", path.String(), "could not create directory", err)
	}
	if _, err := d.session.Store.AcquireLock(path); err != nil {
		return nil, err
	}

	return db, nil
}

// OpenDirectory opens an existing directory for incoming changes.
func (d *Driver) OpenDirectory(parent *DirBaton, name string, baseRev int64) (*DirBaton, error) {
	path, err := safeJoin("open_directory", parent.Path, name)
	if err != nil {
		return nil, err
	}
	if err := d.session.checkCancel("open_directory", path.String()); err != nil {
		return nil, err
	}

	if parent.Skipped {
		db := newDirBaton(d.session, parent, path, parent.ReposRelPath.Join(name), baseRev, false)
		db.Skipped = true
		db.Tracker.MarkSkipped()
		return db, nil
	}

	if _, err := d.session.Store.AcquireLock(path); err != nil {
		return nil, err
	}

	node, err := d.session.Store.ReadNode(path)
	if err != nil {
		return nil, err
	}

	db := newDirBaton(d.session, parent, path, parent.ReposRelPath.Join(name), baseRev, false)

	result, err := classifier.Classify(ensureContext(), classifier.Input{
		Node:                    node,
		OnDiskKind:              onDiskKind(d.session, path),
		UnderConflictedAncestor: parent.inConflictedSubtree(),
		Incoming: classifier.Incoming{
			Action:       classifier.ActionEdit,
			Kind:         wcdb.KindDir,
			ReposRoot:    d.session.AnchorReposRoot,
			ReposRelPath: db.ReposRelPath,
			Revision:     d.session.TargetRevision(),
		},
	}, d.session.newDirModWalk())
	if err != nil {
		return nil, err
	}

	switch result.Verdict {
	case classifier.SkipAlreadyConflicted, classifier.SkipObstructed:
		db.Skipped = true
		db.Tracker.MarkSkipped()
		return db, nil
	case classifier.VerdictTreeConflict:
		d.session.addSkippedTree(path)
		d.recordTreeConflict(parent, path, result)
		if result.Reason == wcdb.ReasonDeleted || result.Reason == wcdb.ReasonReplaced {
			db.inDeletedTreeConflictedSubtree = true
		} else {
			db.Skipped = true
			db.Tracker.MarkSkipped()
			return db, nil
		}
	}

	db.markIncomplete()
	return db, nil
}

// ChangeDirProp accumulates a property change for later application at
// close_directory.
func (d *Driver) ChangeDirProp(db *DirBaton, name string, value *string) error {
	if db.Skipped {
		return nil
	}
	db.recordPropChange(name, value)
	return nil
}

// AbsentDirectory installs an absent placeholder for a directory the
// server declined to describe further (access-restricted subtree).
func (d *Driver) AbsentDirectory(parent *DirBaton, name string) error {
	path, err := safeJoin("absent_directory", parent.Path, name)
	if err != nil {
		return err
	}
	if parent.Skipped {
		return nil
	}
	return d.session.Store.CommitNode(wcdb.NodeWrite{
		Path: path,
		Base: &wcdb.BaseRow{Status: wcdb.BaseAbsent, Kind: wcdb.KindDir, Revision: d.session.TargetRevision()},
	}, nil)
}

// CloseDirectory finalizes a directory's accumulated property changes,
// runs its work queue, and cascades bump-tracker completion.
func (d *Driver) CloseDirectory(db *DirBaton) error {
	if db.Skipped {
		db.Tracker.Close(d.onDirComplete)
		return nil
	}

	node, err := d.session.Store.ReadNode(db.Path)
	if err != nil {
		return err
	}

	var baseProps map[string]string
	if node != nil && node.Base != nil {
		baseProps = node.Base.Properties
	}
	mergedProps, changed := db.applyProps(baseProps)

	var actual *wcdb.ActualRow
	if node != nil {
		actual = node.Actual
	}
	if changed {
		actual = &wcdb.ActualRow{Properties: mergedProps, HasProperties: true}
	}

	write := wcdb.NodeWrite{
		Path: db.Path,
		Base: &wcdb.BaseRow{
			Status:       wcdb.BaseNormal,
			Kind:         wcdb.KindDir,
			Revision:     d.session.TargetRevision(),
			ReposRelPath: db.ReposRelPath,
			ReposRoot:    d.session.AnchorReposRoot,
			ReposUUID:    d.session.AnchorReposUUID,
			Depth:        db.Depth.String(),
			Properties:   mergedProps,
		},
		Actual:       actual,
		WorkQueueDir: db.Path,
		WorkItems: []workqueue.Item{{
			Kind:        workqueue.WriteOldPropsFile,
			Path:        propsSidecarPath(db.Path),
			Description: encodeLegacyProps(mergedProps),
		}},
	}

	if err := d.session.Store.CommitNode(write, d.session.Runner); err != nil {
		return err
	}

	db.Tracker.Close(d.onDirComplete)
	return nil
}

// onDirComplete runs directory-completion bookkeeping once a
// directory's bump tracker reaches zero: clearing incomplete is already
// folded into CloseDirectory's BaseNormal write above, so this hook is
// reserved for the stale-child sweep.
func (d *Driver) onDirComplete(dir scpath.RelativePath) {
	children, err := d.session.Store.WalkChildren(dir)
	if err != nil {
		return
	}
	for _, child := range children {
		node, err := d.session.Store.ReadNode(child)
		if err != nil || node == nil || node.Base == nil {
			continue
		}
		if node.Base.Status == wcdb.BaseNotPresent {
			d.session.Store.DeleteNode(child)
		}
	}
}

// AddFile creates a file baton beneath parent, resolving add-with-history
// when copyfrom is present.
func (d *Driver) AddFile(parent *DirBaton, name string, copyFromURL string, copyFromRev int64) (*FileBaton, error) {
	path, err := safeJoin("add_file", parent.Path, name)
	if err != nil {
		return nil, err
	}
	if err := d.session.checkCancel("add_file", path.String()); err != nil {
		return nil, err
	}

	fb := newFileBaton(d.session, parent, path, parent.ReposRelPath.Join(name), 0, true)
	if parent.Skipped {
		fb.Skipped = true
		return fb, nil
	}

	if copyFromURL != "" {
		d.resolveAddWithHistory(fb, copyFromURL, copyFromRev)
	}
	return fb, nil
}

// resolveAddWithHistory runs the locate/install steps, falling back to
// the fetch callback when no local source qualifies.
func (d *Driver) resolveAddWithHistory(fb *FileBaton, copyFromURL string, copyFromRev int64) {
	copyFromReposRelPath := reposRelPathFromURL(copyFromURL, d.session.AnchorReposRoot)

	sourcePath, found, err := locateCopySource(d.session.Store, fb.Parent.Path, fb.ReposRelPath, copyFromReposRelPath, copyFromRev)
	if err == nil && found {
		if installCopySource(d.session, fb, sourcePath) == nil {
			return
		}
	}

	if d.session.Callbacks.Fetch == nil {
		return
	}
	writer, tmpPath, checksums, err := d.session.Pristine.OpenWritable()
	if err != nil {
		return
	}
	_, err = d.session.Callbacks.Fetch(copyFromReposRelPath, copyFromRev, writer)
	if cerr := writer.Close(); cerr != nil || err != nil {
		d.session.Pristine.RemoveTemp(tmpPath)
		return
	}
	sum := checksums.Sum()
	if err := d.session.Pristine.Install(tmpPath, sum); err != nil {
		return
	}
	fb.NewTextInstalled = true
	fb.NewSHA1 = sum.SHA1
	fb.NewChecksum = sum
	fb.AddedWithHistory = true
}

// OpenFile opens an existing file for incoming changes.
func (d *Driver) OpenFile(parent *DirBaton, name string, baseRev int64) (*FileBaton, error) {
	path, err := safeJoin("open_file", parent.Path, name)
	if err != nil {
		return nil, err
	}
	if err := d.session.checkCancel("open_file", path.String()); err != nil {
		return nil, err
	}

	fb := newFileBaton(d.session, parent, path, parent.ReposRelPath.Join(name), baseRev, false)
	if parent.Skipped {
		fb.Skipped = true
		return fb, nil
	}

	node, err := d.session.Store.ReadNode(path)
	if err != nil {
		return nil, err
	}

	if parent.inConflictedSubtree() {
		fb.Skipped = true
		return fb, nil
	}

	result, err := classifier.Classify(ensureContext(), classifier.Input{
		Node:       node,
		OnDiskKind: onDiskKind(d.session, path),
		Incoming: classifier.Incoming{
			Action:       classifier.ActionEdit,
			Kind:         wcdb.KindFile,
			ReposRoot:    d.session.AnchorReposRoot,
			ReposRelPath: fb.ReposRelPath,
			Revision:     d.session.TargetRevision(),
		},
	}, nil)
	if err != nil {
		return nil, err
	}

	switch result.Verdict {
	case classifier.SkipAlreadyConflicted, classifier.SkipObstructed:
		fb.Skipped = true
	case classifier.VerdictTreeConflict:
		d.session.addSkippedTree(path)
		d.recordTreeConflict(parent, path, result)
		fb.Skipped = true
	}
	return fb, nil
}

// ChangeFileProp accumulates a property change for close_file.
func (d *Driver) ChangeFileProp(fb *FileBaton, name string, value *string) error {
	if fb.Skipped {
		return nil
	}
	fb.recordPropChange(name, value)
	return nil
}

// AbsentFile installs an absent placeholder for a file the server
// declined to describe further.
func (d *Driver) AbsentFile(parent *DirBaton, name string) error {
	path, err := safeJoin("absent_file", parent.Path, name)
	if err != nil {
		return err
	}
	if parent.Skipped {
		return nil
	}
	return d.session.Store.CommitNode(wcdb.NodeWrite{
		Path: path,
		Base: &wcdb.BaseRow{Status: wcdb.BaseAbsent, Kind: wcdb.KindFile, Revision: d.session.TargetRevision()},
	}, nil)
}

// CloseFile finalizes a file's new text/properties, runs its work
// queue, and emits exactly one notification.
func (d *Driver) CloseFile(fb *FileBaton, expectedMD5 string) error {
	if fb.Skipped {
		fb.close(d.onDirComplete)
		return nil
	}
	if expectedMD5 != "" && fb.NewTextInstalled && !fb.NewChecksum.MD5.Equal(objects.MD5Hash(expectedMD5)) {
		return CorruptTextBase("close_file", fb.Path.String(), "produced text MD5 does not match expected", nil)
	}

	node, err := d.session.Store.ReadNode(fb.Path)
	if err != nil {
		return err
	}

	var baseProps map[string]string
	var oldBaseSHA1 objects.ObjectHash
	checksum := fb.NewChecksum
	if node != nil && node.Base != nil {
		baseProps = node.Base.Properties
		oldBaseSHA1 = node.Base.Checksum.SHA1
		if !fb.NewTextInstalled {
			checksum = node.Base.Checksum
		}
	}
	mergedProps, propsChanged := fb.applyProps(baseProps)

	locallyModified := node != nil && (node.IsShadowed() || (node.Actual != nil && node.Actual.HasProperties))
	workingExists, _ := pathExists(d.session.absPath(fb.Path))

	plan := planTextInstall(d.session, fb, oldBaseSHA1, locallyModified, d.session.Config.AllowUnverObstructions, workingExists)

	var actual *wcdb.ActualRow
	if node != nil {
		actual = node.Actual
	}
	if propsChanged {
		actual = &wcdb.ActualRow{Properties: mergedProps, HasProperties: true}
	}

	items := append([]workqueue.Item{}, plan.WorkItems...)
	if plan.InstallPristine {
		item := workqueue.Item{Kind: workqueue.InstallFile, Path: fb.Path}
		if plan.InstallFrom != "" {
			item.SourceTemp = plan.InstallFrom
		} else {
			item.SourceSHA1 = fb.NewSHA1
		}
		items = append(items, item)
	}
	if fb.NewTextInstalled {
		if d.session.Config.UseCommitTimes {
			items = append(items, workqueue.Item{Kind: workqueue.SetMtime, Path: fb.Path, UseCommitTime: true})
		}
		items = append(items, workqueue.Item{Kind: workqueue.RecordFileInfo, Path: fb.Path})
	}

	write := wcdb.NodeWrite{
		Path: fb.Path,
		Base: &wcdb.BaseRow{
			Status:       wcdb.BaseNormal,
			Kind:         wcdb.KindFile,
			Revision:     d.session.TargetRevision(),
			ReposRelPath: fb.ReposRelPath,
			ReposRoot:    d.session.AnchorReposRoot,
			ReposUUID:    d.session.AnchorReposUUID,
			Checksum:     checksum,
			Properties:   mergedProps,
		},
		Actual:       actual,
		WorkQueueDir: fb.Parent.Path,
		WorkItems:    items,
	}
	if node != nil && node.IsShadowed() && node.Working.Schedule == wcdb.ScheduleAdd && fb.Added {
		write.Working = &wcdb.WorkingRow{Present: false}
	}

	if err := d.session.Store.CommitNode(write, d.session.Runner); err != nil {
		return err
	}

	contentState := plan.ContentState
	if d.session.takeTextConflict(fb.Path) {
		// The deferred merge work item ran inside CommitNode's own
		// critical section, so it could only mark the conflict on the
		// session rather than call back into Store. Stamp it now that
		// CommitNode has returned.
		var conflictActual wcdb.ActualRow
		if actual != nil {
			conflictActual = *actual
		}
		conflictActual.TextConflict = true
		if err := d.session.Store.CommitNode(wcdb.NodeWrite{
			Path:   fb.Path,
			Actual: &conflictActual,
		}, nil); err != nil {
			return err
		}
		contentState = ContentConflicted
	}

	action := NotifyUpdateUpdate
	if fb.Added {
		action = NotifyUpdateAdd
	}
	notify(d.session.Callbacks, Notification{
		Path:         fb.Path,
		Action:       action,
		Kind:         wcdb.KindFile,
		ContentState: contentState,
		Revision:     d.session.TargetRevision(),
	})

	fb.close(d.onDirComplete)
	return nil
}

// CloseEdit runs final cleanup: marks the anchor complete if the root
// was never opened, and sweeps stale entries unless the target was
// deleted outright.
func (d *Driver) CloseEdit() error {
	if !d.session.rootOpened {
		d.session.closeComplete = true
		return nil
	}
	if !d.session.targetDeleted {
		d.onDirComplete(d.session.Anchor)
	}
	d.session.closeComplete = true
	return nil
}

func onDiskKind(session *Session, path scpath.RelativePath) wcdb.NodeKind {
	info, err := os.Lstat(session.absPath(path).String())
	if err != nil {
		return wcdb.KindUnknown
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return wcdb.KindSymlink
	case info.IsDir():
		return wcdb.KindDir
	default:
		return wcdb.KindFile
	}
}

func pathExists(path scpath.AbsolutePath) (bool, error) {
	_, err := os.Lstat(path.String())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (d *Driver) childDepth(parent *DirBaton, name string) Depth {
	if d.session.TargetBasename != "" && parent.Path == d.session.Anchor && name == d.session.TargetBasename {
		if d.session.Config.Depth == DepthUnknown {
			return DepthInfinity
		}
		return d.session.Config.Depth
	}
	if parent.Depth == DepthImmediates {
		return DepthEmpty
	}
	return DepthInfinity
}

// resolveAddObstruction applies the add_directory on-disk/recorded
// resolution table (spec §4.2).
func (d *Driver) resolveAddObstruction(path scpath.RelativePath, onDisk wcdb.NodeKind, node *wcdb.NodeRecord, wantKind wcdb.NodeKind) error {
	versioned := node != nil && node.Base != nil && node.Base.Status != wcdb.BaseNotPresent
	switch onDisk {
	case wcdb.KindUnknown, wcdb.KindDir:
		if !versioned {
			if onDisk == wcdb.KindDir && !d.session.Config.AllowUnverObstructions {
				return ObstructedUpdate("add_directory", path.String(), "unversioned obstruction", nil)
			}
			return nil
		}
		if node.Base.Kind != wantKind {
			return ObstructedUpdate("add_directory", path.String(), "recorded kind does not match incoming kind", nil)
		}
		return nil
	default:
		return ObstructedUpdate("add_directory", path.String(), "filesystem kind does not match recorded kind", nil)
	}
}

// recordTreeConflict stamps a tree-conflict record on the victim's
// ACTUAL row and queues the parent's bookkeeping.
func (d *Driver) recordTreeConflict(parent *DirBaton, path scpath.RelativePath, result classifier.Result) {
	d.session.Store.CommitNode(wcdb.NodeWrite{
		Path: path,
		Actual: &wcdb.ActualRow{
			TreeConflict: &wcdb.TreeConflictInfo{
				Reason:      result.Reason,
				SourceLeft:  result.SourceLeft,
				SourceRight: result.SourceRight,
			},
		},
	}, nil)
	notify(d.session.Callbacks, Notification{Path: path, Action: NotifyTreeConflict})
}

// propsSidecarPath names the on-disk location close_directory's legacy
// base-properties file is written to: a sibling of the directory itself
// rather than the directory's own path, which the directory already
// occupies by the time close_directory's work queue runs.
func propsSidecarPath(dir scpath.RelativePath) scpath.RelativePath {
	return scpath.RelativePath(dir.String() + ".svnwc-props")
}

func reposRelPathFromURL(url string, reposRoot string) scpath.RelativePath {
	if len(url) > len(reposRoot) && url[:len(reposRoot)] == reposRoot {
		trimmed := url[len(reposRoot):]
		for len(trimmed) > 0 && trimmed[0] == '/' {
			trimmed = trimmed[1:]
		}
		return scpath.RelativePath(trimmed)
	}
	return scpath.RelativePath(url)
}

// encodeLegacyProps serializes a directory's merged property map into
// the plain-text sidecar format close_directory persists alongside the
// node (spec §4.2): each pair as "name\nvalue\n", the name on one line
// and the value on the next, keys sorted for a stable, diffable file
// across runs. close_file writes no such sidecar.
func encodeLegacyProps(props map[string]string) string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
		b.WriteString(props[name])
		b.WriteByte('\n')
	}
	return b.String()
}
