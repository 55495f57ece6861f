package contentfs

import (
	"os"
	"path/filepath"
)

// ContentDirectory is the overlay view of the content device anchored at a
// given root-relative path: it merges every content root's listing and
// shadows earlier roots with later ones for opens and stats.
type ContentDirectory struct {
	device  *ContentDevice
	ownPath string
}

// NewContentDirectory binds an overlay Directory to ownPath.
func NewContentDirectory(device *ContentDevice, ownPath string) *ContentDirectory {
	return &ContentDirectory{device: device, ownPath: ownPath}
}

func (d *ContentDirectory) RelativeTo(fullPath string) string {
	return trimOwnPath(d.ownPath, fullPath)
}

func (d *ContentDirectory) resolve(rel string) string {
	if rel == "" || rel == "." {
		return d.ownPath
	}
	return joinPath(d.ownPath, rel)
}

func (d *ContentDirectory) ListFiles(rel string) ([]string, error) {
	return d.device.ListFiles(d.resolve(rel))
}

func (d *ContentDirectory) OpenFile(rel string, flags int) (Handle, error) {
	p := d.resolve(rel)
	root, ok := d.device.FindFileParent(p)
	if !ok {
		return nil, ErrNotFound
	}
	full := filepath.Join(root, p)
	f, err := os.OpenFile(full, flags, 0644)
	if err != nil {
		return nil, hostErr("open", full, err)
	}
	return NewHostHandle(f), nil
}

func (d *ContentDirectory) GetFileStats(rel string) (Stat, error) {
	p := d.resolve(rel)
	root, ok := d.device.FindAnyParent(p)
	if !ok {
		return Stat{}, ErrNotFound
	}
	full := filepath.Join(root, p)
	info, err := os.Lstat(full)
	if err != nil {
		return Stat{}, hostErr("stat", full, err)
	}
	return statFromFileInfo(info), nil
}
