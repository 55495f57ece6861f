// Package mount adapts internal/contentfs.Operations to cgofuse's
// fuse.FileSystemInterface, the same path-based contract cgofuse binds to
// libfuse on POSIX and to WinFsp on Windows.
package mount

import (
	"time"

	"github.com/winfsp/cgofuse/fuse"

	"github.com/zeldamods/botwfstools/internal/contentfs"
	"github.com/zeldamods/botwfstools/internal/metrics"
)

// FileSystem is the cgofuse-facing translator: every method here does
// nothing but call into ops, record the call's duration/outcome, and
// convert the result's shape (error -> errno, Stat -> fuse.Stat_t). It
// carries none of the overlay/archive logic itself.
type FileSystem struct {
	fuse.FileSystemBase
	ops     *contentfs.Operations
	metrics *metrics.Collector
}

// New wraps ops for mounting. collector may be nil; a nil Collector's
// recording methods are no-ops, matching a disabled Collector's behavior.
func New(ops *contentfs.Operations, collector *metrics.Collector) *FileSystem {
	return &FileSystem{ops: ops, metrics: collector}
}

func (fs *FileSystem) record(operation string, start time.Time, err error) {
	fs.metrics.RecordOperation(operation, time.Since(start), err == nil)
}

func (fs *FileSystem) Getattr(path string, stat *fuse.Stat_t, fh uint64) int {
	start := time.Now()
	st, err := fs.ops.Getattr(path)
	fs.record("getattr", start, err)
	if err != nil {
		return errnoFor(err)
	}
	*stat = toFuseStat(st)
	return 0
}

func (fs *FileSystem) Readdir(path string, fill func(name string, stat *fuse.Stat_t, ofst int64) bool, ofst int64, fh uint64) int {
	start := time.Now()
	entries, err := fs.ops.Readdir(path)
	fs.record("readdir", start, err)
	if err != nil {
		return errnoFor(err)
	}
	for _, name := range entries {
		if !fill(name, nil, 0) {
			break
		}
	}
	return 0
}

func (fs *FileSystem) Open(path string, flags int) (int, uint64) {
	start := time.Now()
	fh, err := fs.ops.Open(path, flags)
	fs.record("open", start, err)
	if err != nil {
		return errnoFor(err), 0
	}
	return 0, fh
}

func (fs *FileSystem) Create(path string, flags int, mode uint32) (int, uint64) {
	start := time.Now()
	fh, err := fs.ops.Create(path, mode)
	fs.record("create", start, err)
	if err != nil {
		return errnoFor(err), 0
	}
	return 0, fh
}

func (fs *FileSystem) Read(path string, buff []byte, ofst int64, fh uint64) int {
	start := time.Now()
	n, err := fs.ops.Read(fh, buff, ofst)
	fs.record("read", start, err)
	if err != nil {
		return errnoFor(err)
	}
	return n
}

func (fs *FileSystem) Write(path string, buff []byte, ofst int64, fh uint64) int {
	start := time.Now()
	n, err := fs.ops.Write(fh, buff, ofst)
	fs.record("write", start, err)
	if err != nil {
		return errnoFor(err)
	}
	return n
}

func (fs *FileSystem) Release(path string, fh uint64) int {
	start := time.Now()
	err := fs.ops.Release(fh)
	fs.record("release", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Flush(path string, fh uint64) int {
	start := time.Now()
	err := fs.ops.Flush(fh)
	fs.record("flush", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Fsync(path string, datasync bool, fh uint64) int {
	start := time.Now()
	err := fs.ops.Fsync(fh, datasync)
	fs.record("fsync", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Utimens(path string, tmsp []fuse.Timespec) int {
	if len(tmsp) < 2 {
		return 0
	}
	start := time.Now()
	err := fs.ops.Utimens(path, fromTimespec(tmsp[0]), fromTimespec(tmsp[1]))
	fs.record("utimens", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Mkdir(path string, mode uint32) int {
	start := time.Now()
	err := fs.ops.Mkdir(path, mode)
	fs.record("mkdir", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Rmdir(path string) int {
	start := time.Now()
	err := fs.ops.Rmdir(path)
	fs.record("rmdir", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Unlink(path string) int {
	start := time.Now()
	err := fs.ops.Unlink(path)
	fs.record("unlink", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Rename(oldpath, newpath string) int {
	start := time.Now()
	err := fs.ops.Rename(oldpath, newpath)
	fs.record("rename", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Truncate(path string, size int64, fh uint64) int {
	start := time.Now()
	err := fs.ops.Truncate(path, size)
	fs.record("truncate", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Access(path string, mask uint32) int {
	start := time.Now()
	err := fs.ops.Access(path, mask)
	fs.record("access", start, err)
	return errnoFor(err)
}

func (fs *FileSystem) Statfs(path string, stat *fuse.Statfs_t) int {
	start := time.Now()
	st, err := fs.ops.Statfs()
	fs.record("statfs", start, err)
	if err != nil {
		return errnoFor(err)
	}
	*stat = toFuseStatfs(st)
	return 0
}
