package contentfs

import (
	"io"
	"os"
)

// Handle is an open file: something a descriptor can read from, write to,
// and seek within. HostHandle and MemoryHandle are the two implementations
// spec.md names.
type Handle interface {
	ReadAt(buf []byte, off int64) (int, error)
	WriteAt(buf []byte, off int64) (int, error)
	Size() (int64, error)
	Close() error
}

// HostHandle owns a real OS file descriptor. Closing it releases the
// descriptor exactly once.
type HostHandle struct {
	f *os.File
}

// NewHostHandle wraps an already-open os.File.
func NewHostHandle(f *os.File) *HostHandle {
	return &HostHandle{f: f}
}

func (h *HostHandle) ReadAt(buf []byte, off int64) (int, error) {
	n, err := h.f.ReadAt(buf, off)
	if err == io.EOF || (err != nil && n > 0) {
		// A short read at EOF is not a failure for our callers; they size
		// their buffer to the request length and expect n < len(buf) at EOF.
		return n, nil
	}
	return n, err
}

func (h *HostHandle) WriteAt(buf []byte, off int64) (int, error) {
	return h.f.WriteAt(buf, off)
}

func (h *HostHandle) Size() (int64, error) {
	info, err := h.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (h *HostHandle) Close() error {
	return h.f.Close()
}

// MemoryHandle borrows an immutable byte range owned by a parsed archive.
// It shares ownership of the archive's backing buffer (via a retained
// reference, not a copy) so the bytes stay valid even if the archive cache
// evicts the archive while this handle is still open.
type MemoryHandle struct {
	data []byte
}

// NewMemoryHandle wraps a byte slice borrowed from a parsed archive.
func NewMemoryHandle(data []byte) *MemoryHandle {
	return &MemoryHandle{data: data}
}

func (h *MemoryHandle) ReadAt(buf []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(h.data)) {
		return 0, nil
	}
	n := copy(buf, h.data[off:])
	return n, nil
}

func (h *MemoryHandle) WriteAt(buf []byte, off int64) (int, error) {
	return 0, ErrReadOnly
}

func (h *MemoryHandle) Size() (int64, error) {
	return int64(len(h.data)), nil
}

func (h *MemoryHandle) Close() error {
	return nil
}
