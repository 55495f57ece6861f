package contentfs

import (
	"os"
	"path/filepath"
)

// HostDirectory is a Directory backed by a single real filesystem subtree.
// The engine binds it to directories under the work directory; content
// roots are always reached through the ContentDirectory overlay.
type HostDirectory struct {
	fsPath  string // absolute real filesystem path this directory is bound to
	ownPath string // this directory's own root-relative path
}

// NewHostDirectory binds a Directory to a real filesystem location.
func NewHostDirectory(fsPath, ownPath string) *HostDirectory {
	return &HostDirectory{fsPath: fsPath, ownPath: ownPath}
}

func (d *HostDirectory) RelativeTo(fullPath string) string {
	return trimOwnPath(d.ownPath, fullPath)
}

func (d *HostDirectory) real(rel string) string {
	if rel == "" || rel == "." {
		return d.fsPath
	}
	return filepath.Join(d.fsPath, rel)
}

func (d *HostDirectory) ListFiles(rel string) ([]string, error) {
	entries, err := os.ReadDir(d.real(rel))
	if err != nil {
		return nil, hostErr("readdir", d.real(rel), err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (d *HostDirectory) OpenFile(rel string, flags int) (Handle, error) {
	f, err := os.OpenFile(d.real(rel), flags, 0644)
	if err != nil {
		return nil, hostErr("open", d.real(rel), err)
	}
	return NewHostHandle(f), nil
}

func (d *HostDirectory) GetFileStats(rel string) (Stat, error) {
	info, err := os.Lstat(d.real(rel))
	if err != nil {
		return Stat{}, hostErr("stat", d.real(rel), err)
	}
	return statFromFileInfo(info), nil
}

func statFromFileInfo(info os.FileInfo) Stat {
	st := Stat{
		Perm:  uint32(info.Mode().Perm()),
		Nlink: 1,
		Size:  info.Size(),
		Mtime: info.ModTime(),
		Atime: info.ModTime(),
		Ctime: info.ModTime(),
	}
	if info.IsDir() {
		st.Mode = kindDirectory
		st.Nlink = 2
	} else {
		st.Mode = kindRegular
	}
	st.Blocks = (info.Size() + 511) / 512
	fillPlatformStat(&st, info)
	return st
}
