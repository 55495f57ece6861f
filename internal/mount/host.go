package mount

import (
	"fmt"

	"github.com/winfsp/cgofuse/fuse"

	"github.com/zeldamods/botwfstools/internal/contentfs"
	"github.com/zeldamods/botwfstools/internal/metrics"
)

// Host owns the cgofuse FileSystemHost and the mount lifecycle for one
// Operations engine.
type Host struct {
	fs   *FileSystem
	host *fuse.FileSystemHost
}

// NewHost builds a Host ready to Mount ops at a mount point. collector may
// be nil, which disables per-operation metrics recording.
func NewHost(ops *contentfs.Operations, collector *metrics.Collector) *Host {
	fs := New(ops, collector)
	return &Host{fs: fs, host: fuse.NewFileSystemHost(fs)}
}

// Mount blocks until the filesystem is unmounted (by Unmount, by the OS, or
// by the user), matching cgofuse's own Mount contract. extraOptions are
// appended after the platform defaults, so a caller can override them.
func (h *Host) Mount(mountPoint string, extraOptions []string) bool {
	opts := append(defaultMountOptions(), extraOptions...)
	return h.host.Mount(mountPoint, opts)
}

// Unmount requests the mount be torn down; Mount's blocking call returns
// once it completes.
func (h *Host) Unmount() bool {
	return h.host.Unmount()
}

func fsNameOption() string {
	return fmt.Sprintf("-ofsname=%s", "botwfs")
}
