package contentfs

import (
	"os"
	"strings"

	"github.com/zeldamods/botwfstools/internal/sarc"
)

// rawArchiveName is the pseudofile every ArchiveDirectory synthesizes at its
// own root: opening it returns the archive file's bytes as stored, letting
// tools recover the original file a directory was rendered from.
const rawArchiveName = ".__RAW_ARCHIVE__"

// ArchiveDirectory presents a parsed SARC archive's contents as a directory
// tree. ownPath is the archive file's own root-relative path; parent is the
// Directory the archive file itself was opened from, used both to serve
// rawArchiveName and to seed the stat every member stat is derived from.
type ArchiveDirectory struct {
	arc     sarc.Archive
	parent  Directory
	ownPath string
}

// NewArchiveDirectory binds a parsed archive to its own path and the
// Directory it was opened from.
func NewArchiveDirectory(arc sarc.Archive, parent Directory, ownPath string) *ArchiveDirectory {
	return &ArchiveDirectory{arc: arc, parent: parent, ownPath: ownPath}
}

func (d *ArchiveDirectory) RelativeTo(fullPath string) string {
	return trimOwnPath(d.ownPath, fullPath)
}

func (d *ArchiveDirectory) ListFiles(rel string) ([]string, error) {
	prefix := ""
	if rel != "" && rel != "." {
		prefix = rel + "/"
	}

	names := make(map[string]struct{})
	for _, name := range d.arc.ListFiles() {
		name = strings.TrimPrefix(name, "/")
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		name = name[len(prefix):]
		if i := strings.IndexByte(name, '/'); i >= 0 {
			names[name[:i]] = struct{}{}
		} else if name != "" {
			names[name] = struct{}{}
		}
	}
	if prefix == "" {
		names[rawArchiveName] = struct{}{}
	}

	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	return out, nil
}

func (d *ArchiveDirectory) OpenFile(rel string, flags int) (Handle, error) {
	if rel == rawArchiveName {
		return d.parent.OpenFile(d.parent.RelativeTo(d.ownPath), os.O_RDONLY)
	}
	if flags&(os.O_WRONLY|os.O_RDWR) != 0 {
		return nil, ErrReadOnly
	}
	data, ok := d.arc.GetFileData(rel)
	if !ok {
		return nil, ErrNotFound
	}
	return NewMemoryHandle(data), nil
}

func (d *ArchiveDirectory) GetFileStats(rel string) (Stat, error) {
	arcStat, err := d.parent.GetFileStats(d.parent.RelativeTo(d.ownPath))
	if err != nil {
		return Stat{}, err
	}

	if rel == rawArchiveName {
		return arcStat, nil
	}

	for _, name := range d.arc.ListFiles() {
		trimmed := strings.TrimPrefix(name, "/")
		if trimmed == rel {
			size, _ := d.arc.GetFileSize(name)
			return arcStat.asRegularFile(size), nil
		}
		if strings.HasPrefix(trimmed, rel+"/") {
			return arcStat.asDirectory(), nil
		}
	}
	return Stat{}, ErrNotFound
}
