package editor

import (
	"fmt"

	"github.com/Dhanabal/svnwc/pkg/common/err"
)

const pkgName = "editor"

// Package-specific error codes, one per observable error kind from the
// update/switch editor's error design (spec §7).
const (
	CodeCorruptTextBase    = "CORRUPT_TEXT_BASE"
	CodeObstructedUpdate   = "OBSTRUCTED_UPDATE"
	CodeUnsupportedFeature = "UNSUPPORTED_FEATURE"
	CodePathNotFound       = "PATH_NOT_FOUND"
	CodeNotWorkingCopy     = "NOT_WORKING_COPY"
	CodeNotUnderVersion    = "NOT_UNDER_VERSION_CONTROL"
	CodeMalformedStream    = "MALFORMED_STREAM"
	CodeInvalidSwitch      = "INVALID_SWITCH"
	CodeCancelled          = "CANCELLED"
)

// EditError is the concrete error type raised by every editor operation.
// It carries the node path the error concerns (when applicable) alongside
// the common/err base fields (package, code, op, wrapped cause).
type EditError struct {
	base *err.Error
	Path string
}

func (e *EditError) Error() string {
	msg := e.base.Error()
	if e.Path != "" {
		msg += fmt.Sprintf(" [path=%s]", e.Path)
	}
	return msg
}

// Unwrap exposes the base *err.Error so errors.Is/errors.As and
// err.IsCode all work against EditError.
func (e *EditError) Unwrap() error {
	return e.base
}

func newEditError(code, op, path, message string, cause error) *EditError {
	return &EditError{
		base: err.New(pkgName, code, op, message, cause),
		Path: path,
	}
}

// CorruptTextBase is raised when a recorded base checksum disagrees with
// either the delta's expected source checksum or the delta's produced
// fulltext checksum (spec §7, B3).
func CorruptTextBase(op, path, message string, cause error) error {
	return newEditError(CodeCorruptTextBase, op, path, message, cause)
}

// ObstructedUpdate is raised on filesystem-kind mismatch, an unversioned
// obstruction without allow_unver_obstructions, or a path escape (B1).
func ObstructedUpdate(op, path, message string, cause error) error {
	return newEditError(CodeObstructedUpdate, op, path, message, cause)
}

// UnsupportedFeature is raised for add_directory-with-copyfrom (B2) and
// switch operations that would cross repository roots at a non-root node.
func UnsupportedFeature(op, path, message string) error {
	return newEditError(CodeUnsupportedFeature, op, path, message, nil)
}

// PathNotFound is raised when a metadata lookup targets a path with no
// node record at all.
func PathNotFound(op, path string, cause error) error {
	return newEditError(CodePathNotFound, op, path, "path not found", cause)
}

// NotWorkingCopy is raised when the anchor does not resolve to a working
// copy root (no administrative state present).
func NotWorkingCopy(op, path string, cause error) error {
	return newEditError(CodeNotWorkingCopy, op, path, "not a working copy", cause)
}

// NotUnderVersionControl is raised when a metadata lookup targets a path
// that exists on disk but carries no version-control node record.
func NotUnderVersionControl(op, path string) error {
	return newEditError(CodeNotUnderVersion, op, path, "not under version control", nil)
}

// MalformedStream is raised when the editor operations arrive in an
// order the state machine cannot make sense of (e.g. apply_textdelta
// after close_file, or an add_directory for a path that was already
// closed).
func MalformedStream(op, path, message string) error {
	return newEditError(CodeMalformedStream, op, path, message, nil)
}

// InvalidSwitch is raised at session construction when the switch URL
// names a repository root different from the anchor's (scenario 4).
func InvalidSwitch(op, path, message string) error {
	return newEditError(CodeInvalidSwitch, op, path, message, nil)
}

// Cancelled is raised whenever the driver observes the caller's cancel
// function returning a non-nil error.
func Cancelled(op, path string, cause error) error {
	return newEditError(CodeCancelled, op, path, "operation cancelled", cause)
}

// IsCode reports whether err (or anything it wraps) carries the given
// editor error code.
func IsCode(e error, code string) bool {
	return err.IsCode(e, code)
}
