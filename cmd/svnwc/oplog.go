package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Dhanabal/svnwc/pkg/editor"
)

// operationLog is the canned edit-operation stream svnwc replays against
// a freshly opened session, standing in for a real repository access
// layer driving the same thirteen callbacks over the wire.
type operationLog struct {
	TargetRevision int64     `json:"target_revision"`
	Root           entryNode `json:"root"`
}

// entryNode is one directory's worth of editor operations, nested the
// same way open_directory/close_directory nest in the real callback
// sequence: a directory's Entries close before the directory itself
// does.
type entryNode struct {
	BaseRevision int64               `json:"base_revision"`
	Props        map[string]*string  `json:"props,omitempty"`
	Entries      []operationEntry    `json:"entries,omitempty"`
}

// operationEntry is one child operation under a directory: a delete, an
// added or opened child directory (with its own nested entries), an
// absent placeholder, or an added/opened file.
type operationEntry struct {
	Kind             string             `json:"kind"`
	Name             string             `json:"name"`
	Revision         int64              `json:"revision,omitempty"`
	BaseRevision     int64              `json:"base_revision,omitempty"`
	CopyFromURL      string             `json:"copy_from_url,omitempty"`
	CopyFromRevision int64              `json:"copy_from_revision,omitempty"`
	Props            map[string]*string `json:"props,omitempty"`
	Entries          []operationEntry   `json:"entries,omitempty"`
	ContentBase64    string             `json:"content_base64,omitempty"`
	ExpectedMD5      string             `json:"expected_md5,omitempty"`
}

func loadOperationLog(path string) (*operationLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read operation log: %w", err)
	}
	var doc operationLog
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse operation log: %w", err)
	}
	return &doc, nil
}

// replay drives driver through the operation log in full, from
// set_target_revision through close_edit.
func replay(driver *editor.Driver, doc *operationLog) error {
	if doc.TargetRevision != 0 {
		if err := driver.SetTargetRevision(doc.TargetRevision); err != nil {
			return err
		}
	}

	root, err := driver.OpenRoot(doc.Root.BaseRevision)
	if err != nil {
		return err
	}
	if err := applyDirProps(driver, root, doc.Root.Props); err != nil {
		return err
	}
	if err := replayEntries(driver, root, doc.Root.Entries); err != nil {
		return err
	}
	if err := driver.CloseDirectory(root); err != nil {
		return err
	}
	return driver.CloseEdit()
}

func replayEntries(driver *editor.Driver, parent *editor.DirBaton, entries []operationEntry) error {
	for _, e := range entries {
		if err := replayEntry(driver, parent, e); err != nil {
			return fmt.Errorf("%s %q: %w", e.Kind, e.Name, err)
		}
	}
	return nil
}

func replayEntry(driver *editor.Driver, parent *editor.DirBaton, e operationEntry) error {
	switch e.Kind {
	case "delete":
		return driver.DeleteEntry(parent, e.Name, e.Revision)

	case "add_dir":
		db, err := driver.AddDirectory(parent, e.Name, e.CopyFromURL, e.CopyFromRevision)
		if err != nil {
			return err
		}
		return closeOutDir(driver, db, e)

	case "open_dir":
		db, err := driver.OpenDirectory(parent, e.Name, e.BaseRevision)
		if err != nil {
			return err
		}
		return closeOutDir(driver, db, e)

	case "absent_dir":
		return driver.AbsentDirectory(parent, e.Name)

	case "add_file":
		fb, err := driver.AddFile(parent, e.Name, e.CopyFromURL, e.CopyFromRevision)
		if err != nil {
			return err
		}
		return closeOutFile(driver, fb, e)

	case "open_file":
		fb, err := driver.OpenFile(parent, e.Name, e.BaseRevision)
		if err != nil {
			return err
		}
		return closeOutFile(driver, fb, e)

	case "absent_file":
		return driver.AbsentFile(parent, e.Name)

	default:
		return fmt.Errorf("unknown operation kind %q", e.Kind)
	}
}

func closeOutDir(driver *editor.Driver, db *editor.DirBaton, e operationEntry) error {
	if err := applyDirProps(driver, db, e.Props); err != nil {
		return err
	}
	if err := replayEntries(driver, db, e.Entries); err != nil {
		return err
	}
	return driver.CloseDirectory(db)
}

func closeOutFile(driver *editor.Driver, fb *editor.FileBaton, e operationEntry) error {
	if e.ContentBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(e.ContentBase64)
		if err != nil {
			return fmt.Errorf("decode content: %w", err)
		}
		handler, err := driver.ApplyTextdelta(fb, "")
		if err != nil {
			return err
		}
		if err := handler(editor.TextDeltaWindow{Data: data}); err != nil {
			return err
		}
		if err := handler(editor.TextDeltaWindow{Final: true}); err != nil {
			return err
		}
	}
	if err := applyFileProps(driver, fb, e.Props); err != nil {
		return err
	}
	return driver.CloseFile(fb, e.ExpectedMD5)
}

func applyDirProps(driver *editor.Driver, db *editor.DirBaton, props map[string]*string) error {
	for name, value := range props {
		if err := driver.ChangeDirProp(db, name, value); err != nil {
			return err
		}
	}
	return nil
}

func applyFileProps(driver *editor.Driver, fb *editor.FileBaton, props map[string]*string) error {
	for name, value := range props {
		if err := driver.ChangeFileProp(fb, name, value); err != nil {
			return err
		}
	}
	return nil
}
