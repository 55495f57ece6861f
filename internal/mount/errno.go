package mount

import (
	"errors"
	"syscall"

	"github.com/winfsp/cgofuse/fuse"

	"github.com/zeldamods/botwfstools/internal/contentfs"
)

// errnoFor translates a contentfs error into a cgofuse return code: the
// negative errno the FileSystemInterface callbacks are required to return.
// A HostError carrying a real syscall.Errno is passed through unchanged so
// callers see the original OS failure (EEXIST, ENOTEMPTY, ...) rather than a
// blanket EIO.
func errnoFor(err error) int {
	if err == nil {
		return 0
	}
	switch err {
	case contentfs.ErrNotFound, contentfs.ErrParseFailure:
		return -fuse.ENOENT
	case contentfs.ErrReadOnly:
		return -fuse.EROFS
	}
	var hostErr *contentfs.HostError
	if errors.As(err, &hostErr) {
		var errno syscall.Errno
		if errors.As(hostErr.Err, &errno) {
			return -int(errno)
		}
		return -fuse.EIO
	}
	return -fuse.EIO
}
