package store

import (
	"fmt"
	"io"
	"os"

	"github.com/Dhanabal/svnwc/pkg/common/fileops"
	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
)

// PristineStore is the pristine-text interface the edit driver programs
// against (spec §6, "Pristine-store interface"). Text is installed
// two-phase: OpenWritable gives the caller a stream plus a temporary
// path and running dual-checksum accumulators; once the caller has
// finished writing and wants to commit, Install moves the temporary
// into place addressed by its SHA1. The edit driver installs a file's
// new text as soon as its final text-delta window arrives, not at
// close_file.
type PristineStore interface {
	// OpenWritable returns a stream to write a new pristine text to, the
	// temporary path it is being written under, and accumulators the
	// caller reads after closing the stream to learn the produced
	// text's MD5 and SHA1.
	OpenWritable() (stream io.WriteCloser, tmpPath string, checksums *objects.DualChecksumWriter, err error)

	// Install moves the completed temporary at tmpPath into the
	// content-addressed store under sha1, verifying it against the
	// supplied dual checksum first. Install is idempotent: installing
	// the same sha1 twice (e.g. two files with identical content) is a
	// no-op on the second call, mirroring the content-addressed store's
	// natural deduplication.
	Install(tmpPath string, checksum objects.DualChecksum) error

	// ReadBySHA1 opens the pristine text for reading, or returns
	// (nil, false, nil) if no pristine with that hash is present.
	ReadBySHA1(sha1 objects.ObjectHash) (stream io.ReadCloser, present bool, err error)

	// Present reports whether a pristine with the given hash already
	// exists, without opening it.
	Present(sha1 objects.ObjectHash) (bool, error)

	// RemoveTemp deletes an uncommitted temporary (spec I6: "uncommitted
	// pristines are removable" on cancellation or error exit).
	RemoveTemp(tmpPath string) error
}

// FilePristineStore stores pristine texts in a git-style fan-out
// directory layout (first two hex characters of the SHA1 as a
// subdirectory), keyed by the raw fulltext's own SHA1 rather than a
// git-object hash of a serialized blob header — working-copy pristines
// have no object header, just fulltext.
type FilePristineStore struct {
	pristineDir scpath.AbsolutePath
	tempDir     scpath.AbsolutePath
}

// NewFilePristineStore creates a store rooted at the administrative
// directory's pristine/ and tmp/ subdirectories.
func NewFilePristineStore(adminDir scpath.AbsolutePath) (*FilePristineStore, error) {
	pristineDir := adminDir.Join("pristine")
	tempDir := adminDir.Join("tmp")

	if err := fileops.EnsureDir(pristineDir); err != nil {
		return nil, fmt.Errorf("initialize pristine store: %w", err)
	}
	if err := fileops.EnsureDir(tempDir); err != nil {
		return nil, fmt.Errorf("initialize pristine temp dir: %w", err)
	}

	return &FilePristineStore{pristineDir: pristineDir, tempDir: tempDir}, nil
}

func (p *FilePristineStore) OpenWritable() (io.WriteCloser, string, *objects.DualChecksumWriter, error) {
	f, err := os.CreateTemp(p.tempDir.String(), "pristine-*")
	if err != nil {
		return nil, "", nil, fmt.Errorf("create pristine temp file: %w", err)
	}
	tmpPath := f.Name()
	checksums := objects.NewDualChecksumWriter(f)
	return &syncingWriteCloser{f: f, checksums: checksums}, tmpPath, checksums, nil
}

func (p *FilePristineStore) Install(tmpPath string, checksum objects.DualChecksum) error {
	target, err := p.resolvePath(checksum.SHA1)
	if err != nil {
		return err
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("open pristine temp: %w", err)
	}
	verify := objects.NewDualChecksumWriter(io.Discard)
	_, err = io.Copy(verify, f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read pristine temp: %w", err)
	}
	if got := verify.Sum(); !got.SHA1.Equal(checksum.SHA1) || !got.MD5.Equal(checksum.MD5) {
		return fmt.Errorf("pristine temp does not match checksum %s", checksum.SHA1.Short())
	}

	present, err := fileops.Exists(target)
	if err != nil {
		return fmt.Errorf("check pristine existence: %w", err)
	}
	if present {
		return os.Remove(tmpPath)
	}

	if err := fileops.EnsureParentDir(target); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o444); err != nil {
		return fmt.Errorf("chmod pristine: %w", err)
	}
	if err := os.Rename(tmpPath, target.String()); err != nil {
		return fmt.Errorf("install pristine %s: %w", checksum.SHA1.Short(), err)
	}
	return nil
}

func (p *FilePristineStore) ReadBySHA1(sha1 objects.ObjectHash) (io.ReadCloser, bool, error) {
	target, err := p.resolvePath(sha1)
	if err != nil {
		return nil, false, err
	}

	present, err := fileops.Exists(target)
	if err != nil {
		return nil, false, fmt.Errorf("check pristine existence: %w", err)
	}
	if !present {
		return nil, false, nil
	}

	f, err := os.Open(target.String())
	if err != nil {
		return nil, false, fmt.Errorf("open pristine %s: %w", sha1.Short(), err)
	}
	return f, true, nil
}

func (p *FilePristineStore) Present(sha1 objects.ObjectHash) (bool, error) {
	target, err := p.resolvePath(sha1)
	if err != nil {
		return false, err
	}
	return fileops.Exists(target)
}

func (p *FilePristineStore) RemoveTemp(tmpPath string) error {
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove pristine temp: %w", err)
	}
	return nil
}

// resolvePath maps a SHA1 to the git-style two-level fan-out path.
func (p *FilePristineStore) resolvePath(sha1 objects.ObjectHash) (scpath.AbsolutePath, error) {
	hashStr := sha1.String()
	if len(hashStr) != 40 {
		return "", fmt.Errorf("invalid pristine sha1 length: %d", len(hashStr))
	}
	return p.pristineDir.Join(hashStr[:2], hashStr[2:]), nil
}

// syncingWriteCloser fsyncs before close, the same discipline the
// teacher's fileops.AtomicWrite applies to its temp file before rename.
// Writes are routed through checksums so the caller's stream and the
// accumulators returned by OpenWritable always see identical bytes.
type syncingWriteCloser struct {
	f         *os.File
	checksums *objects.DualChecksumWriter
}

func (s *syncingWriteCloser) Write(p []byte) (int, error) {
	return s.checksums.Write(p)
}

func (s *syncingWriteCloser) Close() error {
	if err := s.f.Sync(); err != nil {
		s.f.Close()
		return fmt.Errorf("sync pristine temp: %w", err)
	}
	return s.f.Close()
}
