package contentfs

import (
	"os"
	"testing"
	"time"

	"github.com/zeldamods/botwfstools/internal/sarc"
)

type fakeParentDirectory struct {
	ownPath string
	stat    Stat
	data    []byte
}

func (f *fakeParentDirectory) RelativeTo(fullPath string) string { return trimOwnPath(f.ownPath, fullPath) }
func (f *fakeParentDirectory) ListFiles(rel string) ([]string, error) { return nil, nil }
func (f *fakeParentDirectory) OpenFile(rel string, flags int) (Handle, error) {
	return NewMemoryHandle(f.data), nil
}
func (f *fakeParentDirectory) GetFileStats(rel string) (Stat, error) { return f.stat, nil }

func buildFixtureArchive(t *testing.T) sarc.Archive {
	t.Helper()
	data := sarc.Build([]struct {
		Name string
		Data []byte
	}{
		{Name: "Actor/Link.bxml", Data: []byte("link-data")},
		{Name: "Actor/Sub/Extra.bas", Data: []byte("extra")},
	})
	arc, err := sarc.Open(data)
	if err != nil {
		t.Fatalf("sarc.Open: %v", err)
	}
	return arc
}

func TestArchiveDirectoryListFilesIncludesRawArchivePseudofile(t *testing.T) {
	arc := buildFixtureArchive(t)
	parent := &fakeParentDirectory{ownPath: "", stat: Stat{Mtime: time.Now()}}
	ad := NewArchiveDirectory(arc, parent, "Pack.sarc")

	names, err := ad.ListFiles(".")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := map[string]bool{"Actor": true, rawArchiveName: true}
	if len(names) != len(want) {
		t.Fatalf("ListFiles = %v, want %v", names, want)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected entry %q", n)
		}
	}
}

func TestArchiveDirectoryListFilesNested(t *testing.T) {
	arc := buildFixtureArchive(t)
	parent := &fakeParentDirectory{}
	ad := NewArchiveDirectory(arc, parent, "Pack.sarc")

	names, err := ad.ListFiles("Actor")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	want := map[string]bool{"Link.bxml": true, "Sub": true}
	if len(names) != 2 {
		t.Fatalf("ListFiles(Actor) = %v, want %v", names, want)
	}
}

func TestArchiveDirectoryOpenMember(t *testing.T) {
	arc := buildFixtureArchive(t)
	parent := &fakeParentDirectory{}
	ad := NewArchiveDirectory(arc, parent, "Pack.sarc")

	h, err := ad.OpenFile("Actor/Link.bxml", os.O_RDONLY)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	buf := make([]byte, 9)
	if _, err := h.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buf) != "link-data" {
		t.Errorf("ReadAt = %q, want link-data", buf)
	}
}

func TestArchiveDirectoryOpenMemberRejectsWrite(t *testing.T) {
	arc := buildFixtureArchive(t)
	ad := NewArchiveDirectory(arc, &fakeParentDirectory{}, "Pack.sarc")

	if _, err := ad.OpenFile("Actor/Link.bxml", os.O_WRONLY); err != ErrReadOnly {
		t.Errorf("OpenFile write = %v, want ErrReadOnly", err)
	}
}

func TestArchiveDirectoryOpenRawArchiveDelegatesToParent(t *testing.T) {
	arc := buildFixtureArchive(t)
	parent := &fakeParentDirectory{ownPath: "", data: []byte("raw-archive-bytes")}
	ad := NewArchiveDirectory(arc, parent, "Pack.sarc")

	h, err := ad.OpenFile(rawArchiveName, os.O_RDONLY)
	if err != nil {
		t.Fatalf("OpenFile(%s): %v", rawArchiveName, err)
	}
	buf := make([]byte, len("raw-archive-bytes"))
	if _, err := h.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buf) != "raw-archive-bytes" {
		t.Errorf("ReadAt = %q, want raw-archive-bytes", buf)
	}
}

func TestArchiveDirectoryStatMemberIsRegularFile(t *testing.T) {
	arc := buildFixtureArchive(t)
	parent := &fakeParentDirectory{stat: Stat{Mode: kindRegular, Perm: 0644, Size: 1000}}
	ad := NewArchiveDirectory(arc, parent, "Pack.sarc")

	st, err := ad.GetFileStats("Actor/Link.bxml")
	if err != nil {
		t.Fatalf("GetFileStats: %v", err)
	}
	if st.IsDir() {
		t.Errorf("member stat reports directory")
	}
	if st.Size != int64(len("link-data")) {
		t.Errorf("member stat Size = %d, want %d", st.Size, len("link-data"))
	}
}

func TestArchiveDirectoryStatSyntheticSubdirectory(t *testing.T) {
	arc := buildFixtureArchive(t)
	parent := &fakeParentDirectory{stat: Stat{Mode: kindRegular, Perm: 0644}}
	ad := NewArchiveDirectory(arc, parent, "Pack.sarc")

	st, err := ad.GetFileStats("Actor")
	if err != nil {
		t.Fatalf("GetFileStats: %v", err)
	}
	if !st.IsDir() {
		t.Errorf("synthesized subdirectory stat is not a directory")
	}
}

func TestArchiveDirectoryStatMissingMember(t *testing.T) {
	arc := buildFixtureArchive(t)
	ad := NewArchiveDirectory(arc, &fakeParentDirectory{}, "Pack.sarc")

	if _, err := ad.GetFileStats("NoSuchMember"); err != ErrNotFound {
		t.Errorf("GetFileStats missing = %v, want ErrNotFound", err)
	}
}
