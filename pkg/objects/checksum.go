package objects

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"
)

// MD5Hash represents an MD5 digest (32-character hex string).
// The working-copy layer records MD5 alongside SHA1 for every file's
// BASE text because the wire protocol this spec's transport feeds
// carries MD5 checksums for corruption detection, while the pristine
// store is addressed by SHA1.
type MD5Hash string

const (
	// MD5HashLength is the length of a full MD5 hash in hex (32 characters)
	MD5HashLength = 32
)

// ZeroMD5 returns an all-zero MD5 hash.
func ZeroMD5() MD5Hash {
	return MD5Hash(strings.Repeat("0", MD5HashLength))
}

// NewMD5Hash computes the MD5 digest of data.
func NewMD5Hash(data []byte) MD5Hash {
	sum := md5.Sum(data)
	return MD5Hash(hex.EncodeToString(sum[:]))
}

// String returns the hash as a string.
func (h MD5Hash) String() string {
	return string(h)
}

// IsValid reports whether h is a well-formed MD5 hex digest.
func (h MD5Hash) IsValid() bool {
	if len(h) != MD5HashLength {
		return false
	}
	for _, c := range h {
		if !isHexChar(c) {
			return false
		}
	}
	return true
}

// Equal compares two MD5 hashes case-insensitively.
func (h MD5Hash) Equal(other MD5Hash) bool {
	return strings.EqualFold(string(h), string(other))
}

// DualChecksum carries both digests a BASE file records: the SHA1 used
// to address the pristine in the content store, and the MD5 used to
// cross-check the wire protocol's expected-checksum arguments.
type DualChecksum struct {
	SHA1 ObjectHash
	MD5  MD5Hash
}

// ComputeDualChecksum computes both digests of data in one pass.
func ComputeDualChecksum(data []byte) DualChecksum {
	sha1sum := sha1.Sum(data)
	md5sum := md5.Sum(data)
	return DualChecksum{
		SHA1: ObjectHash(hex.EncodeToString(sha1sum[:])),
		MD5:  MD5Hash(hex.EncodeToString(md5sum[:])),
	}
}

// DualChecksumWriter is an io.Writer that accumulates both a SHA1 and an
// MD5 digest of everything written to it, so a text-delta target stream
// can be checksummed without buffering the fulltext twice. Spec §4.2
// apply_textdelta wraps the pristine-store temporary's writer with one
// of these to produce the new base text's MD5 and SHA1 in a single
// streaming pass, and wraps the delta source reader with a second one
// (MD5 only) to verify the consumed source text wasn't corrupted.
type DualChecksumWriter struct {
	w    io.Writer
	sha1 hash.Hash
	md5  hash.Hash
}

// NewDualChecksumWriter wraps w, tee-ing every Write into both digests.
func NewDualChecksumWriter(w io.Writer) *DualChecksumWriter {
	return &DualChecksumWriter{
		w:    w,
		sha1: sha1.New(),
		md5:  md5.New(),
	}
}

func (d *DualChecksumWriter) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	if n > 0 {
		d.sha1.Write(p[:n])
		d.md5.Write(p[:n])
	}
	return n, err
}

// Sum returns the accumulated digests.
func (d *DualChecksumWriter) Sum() DualChecksum {
	return DualChecksum{
		SHA1: ObjectHash(hex.EncodeToString(d.sha1.Sum(nil))),
		MD5:  MD5Hash(hex.EncodeToString(d.md5.Sum(nil))),
	}
}

// MD5Reader wraps an io.Reader, accumulating an MD5 digest of everything
// read through it. apply_textdelta re-reads the recorded base text
// through one before accepting any window, so a mismatch against the
// expected base MD5 is detected up front (spec §4.2, CorruptTextBase).
type MD5Reader struct {
	r   io.Reader
	sum hash.Hash
}

// NewMD5Reader wraps r.
func NewMD5Reader(r io.Reader) *MD5Reader {
	return &MD5Reader{r: r, sum: md5.New()}
}

func (m *MD5Reader) Read(p []byte) (int, error) {
	n, err := m.r.Read(p)
	if n > 0 {
		m.sum.Write(p[:n])
	}
	return n, err
}

// Sum returns the MD5 digest of everything read so far.
func (m *MD5Reader) Sum() MD5Hash {
	return MD5Hash(hex.EncodeToString(m.sum.Sum(nil)))
}

// VerifyChecksum reports a descriptive error if got does not match want,
// unless want is the zero value (meaning "no expectation").
func VerifyChecksum(kind string, want, got MD5Hash) error {
	if want == "" || want == ZeroMD5() {
		return nil
	}
	if !want.Equal(got) {
		return fmt.Errorf("%s checksum mismatch: expected %s, got %s", kind, want, got)
	}
	return nil
}
