package editor

import (
	"testing"

	"github.com/Dhanabal/svnwc/pkg/objects"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

func installPristineText(t *testing.T, session *Session, content []byte) objects.DualChecksum {
	t.Helper()
	stream, tmpPath, checksums, err := session.Pristine.OpenWritable()
	if err != nil {
		t.Fatalf("OpenWritable() error = %v", err)
	}
	if _, err := stream.Write(content); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	sum := checksums.Sum()
	if err := session.Pristine.Install(tmpPath, sum); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	return sum
}

func TestApplyTextdelta_SkippedFileIsNoop(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)
	root := newDirBaton(session, nil, "", "", 1, false)
	fb := newFileBaton(session, root, "a.txt", "a.txt", 1, false)
	fb.Skipped = true

	handler, err := driver.ApplyTextdelta(fb, "")
	if err != nil {
		t.Fatalf("ApplyTextdelta() error = %v", err)
	}
	if err := handler(TextDeltaWindow{Data: []byte("ignored"), Final: true}); err != nil {
		t.Fatalf("handler() error = %v", err)
	}
	if fb.NewTextInstalled {
		t.Error("NewTextInstalled = true for a skipped file, want false")
	}
}

func TestApplyTextdelta_InstallsNewPristineOnFinalWindow(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)
	root := newDirBaton(session, nil, "", "", 1, false)
	fb := newFileBaton(session, root, "a.txt", "a.txt", 1, true)

	handler, err := driver.ApplyTextdelta(fb, "")
	if err != nil {
		t.Fatalf("ApplyTextdelta() error = %v", err)
	}
	content := []byte("line one\nline two\n")
	if err := handler(TextDeltaWindow{Data: content[:10]}); err != nil {
		t.Fatalf("handler(chunk1) error = %v", err)
	}
	if err := handler(TextDeltaWindow{Data: content[10:]}); err != nil {
		t.Fatalf("handler(chunk2) error = %v", err)
	}
	if fb.NewTextInstalled {
		t.Fatal("NewTextInstalled = true before the final window arrived")
	}
	if err := handler(TextDeltaWindow{Final: true}); err != nil {
		t.Fatalf("handler(final) error = %v", err)
	}

	if !fb.NewTextInstalled {
		t.Fatal("NewTextInstalled = false after the final window")
	}
	want := objects.ComputeDualChecksum(content)
	if fb.NewSHA1 != want.SHA1 {
		t.Errorf("NewSHA1 = %v, want %v", fb.NewSHA1, want.SHA1)
	}

	stream, present, err := session.Pristine.ReadBySHA1(fb.NewSHA1)
	if err != nil {
		t.Fatalf("ReadBySHA1() error = %v", err)
	}
	if !present {
		t.Fatal("ReadBySHA1() present = false, want the installed text to be present")
	}
	stream.Close()
}

func TestApplyTextdelta_RejectsMismatchedRecordedBaseMD5(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)
	root := newDirBaton(session, nil, "", "", 1, false)
	fb := newFileBaton(session, root, "a.txt", "a.txt", 1, false)

	sum := installPristineText(t, session, []byte("original text\n"))
	if err := session.Store.CommitNode(wcdb.NodeWrite{
		Path: "a.txt",
		Base: &wcdb.BaseRow{Status: wcdb.BaseNormal, Kind: wcdb.KindFile, Checksum: sum},
	}, nil); err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}

	_, err := driver.ApplyTextdelta(fb, "0123456789abcdef0123456789abcdef")
	if err == nil {
		t.Fatal("ApplyTextdelta() error = nil for a mismatched expected base MD5, want CorruptTextBase")
	}
	if !IsCode(err, CodeCorruptTextBase) {
		t.Errorf("ApplyTextdelta() error = %v, want CodeCorruptTextBase", err)
	}
}

func TestApplyTextdelta_AcceptsMatchingRecordedBaseMD5(t *testing.T) {
	session := newTestSession(t, Config{})
	driver := NewDriver(session)
	root := newDirBaton(session, nil, "", "", 1, false)
	fb := newFileBaton(session, root, "a.txt", "a.txt", 1, false)

	sum := installPristineText(t, session, []byte("original text\n"))
	if err := session.Store.CommitNode(wcdb.NodeWrite{
		Path: "a.txt",
		Base: &wcdb.BaseRow{Status: wcdb.BaseNormal, Kind: wcdb.KindFile, Checksum: sum},
	}, nil); err != nil {
		t.Fatalf("CommitNode() error = %v", err)
	}

	handler, err := driver.ApplyTextdelta(fb, string(sum.MD5))
	if err != nil {
		t.Fatalf("ApplyTextdelta() error = %v, want nil for a matching recorded base MD5", err)
	}
	if err := handler(TextDeltaWindow{Final: true}); err != nil {
		t.Fatalf("handler() error = %v", err)
	}
}

func TestVerifyPristineChecksum_DetectsStoreCorruption(t *testing.T) {
	session := newTestSession(t, Config{})
	sum := installPristineText(t, session, []byte("clean text\n"))

	err := verifyPristineChecksum(session, "a.txt", sum.SHA1, objects.NewMD5Hash([]byte("something else")))
	if err == nil {
		t.Fatal("verifyPristineChecksum() error = nil for a checksum mismatch, want CorruptTextBase")
	}
	if !IsCode(err, CodeCorruptTextBase) {
		t.Errorf("verifyPristineChecksum() error = %v, want CodeCorruptTextBase", err)
	}
}

func TestVerifyPristineChecksum_PassesWhenMatching(t *testing.T) {
	session := newTestSession(t, Config{})
	content := []byte("clean text\n")
	sum := installPristineText(t, session, content)

	if err := verifyPristineChecksum(session, "a.txt", sum.SHA1, sum.MD5); err != nil {
		t.Errorf("verifyPristineChecksum() error = %v, want nil", err)
	}
}

func TestVerifyPristineChecksum_AbsentSourceIsNotAnError(t *testing.T) {
	session := newTestSession(t, Config{})
	if err := verifyPristineChecksum(session, "a.txt", "deadbeef", objects.NewMD5Hash(nil)); err != nil {
		t.Errorf("verifyPristineChecksum() error = %v, want nil when the pristine text is absent", err)
	}
}
