package contentfs

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// baseRoot is a starting point for the upward directory-resolution walk:
// either the content device's overlay of read-only roots, or a single real
// host subtree (the work directory).
type baseRoot struct {
	content  *ContentDevice
	hostRoot string
}

// key distinguishes the two bases for archive-cache keying, so a content
// archive and a work-directory shadow of the same relative path never
// collide.
func (b baseRoot) key() string {
	if b.content != nil {
		return "content"
	}
	return "work:" + b.hostRoot
}

// Operations implements the full filesystem callback surface described by
// the virtual-filesystem engine: access, getattr, readdir, open/create,
// read/write, release, rename/unlink/rmdir/mkdir, truncate, statfs. It is
// independent of any specific mount library; internal/mount adapts it.
type Operations struct {
	content *ContentDevice
	workDir string // "" when no work directory was configured

	archives *archiveCache

	fdMu sync.Mutex
	fds  *fdTable
}

// NewOperations builds the engine over contentRoots (lowest to highest
// priority) with an optional work directory ("" disables writes), sizing
// the archive cache to its built-in default.
func NewOperations(contentRoots []string, workDir string) *Operations {
	return NewOperationsWithCacheSize(contentRoots, workDir, 0)
}

// NewOperationsWithCacheSize is NewOperations with an explicit archive-cache
// capacity (e.g. from internal/config); archiveCacheSize <= 0 falls back to
// the same built-in default NewOperations uses.
func NewOperationsWithCacheSize(contentRoots []string, workDir string, archiveCacheSize int) *Operations {
	return NewOperationsWithCacheSizes(contentRoots, workDir, archiveCacheSize, 0)
}

// NewOperationsWithCacheSizes additionally sizes ContentDevice's
// path-lookup caches (internal/config's PathCacheSize); pathCacheSize <= 0
// falls back to ContentDevice's own built-in default.
func NewOperationsWithCacheSizes(contentRoots []string, workDir string, archiveCacheSize, pathCacheSize int) *Operations {
	return &Operations{
		content:  NewContentDeviceWithCacheSize(contentRoots, pathCacheSize),
		workDir:  workDir,
		archives: newArchiveCache(archiveCacheSize),
		fds:      newFdTable(),
	}
}

// SetArchiveCacheObserver installs a callback invoked once per archive
// lookup with whether it hit the cache or required a fresh parse, so
// internal/metrics can track archive-cache effectiveness without this
// package importing anything metrics-specific.
func (o *Operations) SetArchiveCacheObserver(observe func(hit bool)) {
	o.archives.setObserver(observe)
}

func (o *Operations) contentBase() baseRoot { return baseRoot{content: o.content} }
func (o *Operations) workBase() baseRoot    { return baseRoot{hostRoot: o.workDir} }

// resolveDirectory walks upward from path (inclusive) until it reaches an
// ancestor that is a real directory or an archive, and returns the
// Directory bound to that ancestor. Callers translate their original
// target path into that Directory's own relative addressing via
// Directory.RelativeTo; the target may be several segments below the
// returned Directory's own path if intermediate segments are archive
// members rather than real directories.
func (o *Operations) resolveDirectory(base baseRoot, path string) (Directory, error) {
	for {
		dir, matched, err := o.tryResolveAt(base, path)
		if err != nil {
			return nil, err
		}
		if matched {
			return dir, nil
		}
		if path == "" {
			return nil, ErrNotFound
		}
		path = parentOf(path)
	}
}

func (o *Operations) tryResolveAt(base baseRoot, path string) (Directory, bool, error) {
	if base.content != nil {
		if dir := base.content.TryOpenDir(path); dir != nil {
			return dir, true, nil
		}
		if IsArchiveName(path) && !base.content.IsDir(path) {
			dir, err := o.openArchiveDirectory(base, path)
			return dir, true, err
		}
		return nil, false, nil
	}

	full := base.hostRoot
	if path != "" {
		full = filepath.Join(base.hostRoot, path)
	}
	if isRealDir(full) {
		return NewHostDirectory(full, path), true, nil
	}
	if IsArchiveName(path) && !isRealDir(full) {
		dir, err := o.openArchiveDirectory(base, path)
		return dir, true, err
	}
	return nil, false, nil
}

// openArchiveDirectory resolves path's containing directory, opens path as
// a file through it, and parses the bytes as an archive. A parse failure
// degrades to ErrNotFound: the path stops looking like a directory, but its
// bytes remain reachable as a regular file through the parent's own view,
// since getattr/open never route through this function for a leaf access.
func (o *Operations) openArchiveDirectory(base baseRoot, path string) (Directory, error) {
	parent, err := o.resolveDirectory(base, parentOf(path))
	if err != nil {
		return nil, err
	}

	key := base.key() + "\x00" + path
	arc, archiveParent, err := o.archives.getOrParse(key, func() (Handle, Directory, error) {
		h, err := parent.OpenFile(parent.RelativeTo(path), os.O_RDONLY)
		return h, parent, err
	})
	if err != nil {
		if err == ErrParseFailure {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return NewArchiveDirectory(arc, archiveParent, path), nil
}

// resolveParentDirectory picks the work directory or the content overlay as
// the base for resolving path's containing directory, preferring the work
// directory whenever it already shadows path.
func (o *Operations) resolveParentDirectory(path string) (Directory, error) {
	if o.workDir != "" && exists(filepath.Join(o.workDir, path)) {
		return o.resolveDirectory(o.workBase(), parentOf(path))
	}
	return o.resolveDirectory(o.contentBase(), parentOf(path))
}

func (o *Operations) getFile(base baseRoot, path string, flags int) (Handle, error) {
	parent, err := o.resolveDirectory(base, parentOf(path))
	if err != nil {
		return nil, err
	}
	return parent.OpenFile(parent.RelativeTo(path), flags)
}

// getFileFromPartial opens path read-only, preferring a work-directory copy
// when one already exists.
func (o *Operations) getFileFromPartial(path string) (Handle, error) {
	if o.workDir != "" {
		full := filepath.Join(o.workDir, path)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			return o.getFile(o.workBase(), path, os.O_RDONLY)
		}
	}
	return o.getFile(o.contentBase(), path, os.O_RDONLY)
}

func isRealDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// Access is a no-op: every path this engine can resolve at all is
// considered accessible.
func (o *Operations) Access(path string, mode uint32) error { return nil }

// Getattr resolves path and, per spec, rewrites an archive-named file's own
// stat to present it as a directory.
func (o *Operations) Getattr(path string) (Stat, error) {
	p := stripLeadingSlash(path)
	parent, err := o.resolveParentDirectory(p)
	if err != nil {
		return Stat{}, err
	}
	st, err := parent.GetFileStats(parent.RelativeTo(p))
	if err != nil {
		return Stat{}, err
	}
	if IsArchiveName(p) {
		st = st.asDirectory()
	}
	return st, nil
}

// Readdir merges the work directory's real listing (if path exists there)
// with the content overlay's listing (including archive expansion), always
// including "." and "..".
func (o *Operations) Readdir(path string) ([]string, error) {
	p := stripLeadingSlash(path)
	entries := map[string]struct{}{".": {}, "..": {}}

	if o.workDir != "" {
		full := o.workDir
		if p != "" {
			full = filepath.Join(o.workDir, p)
		}
		if es, err := os.ReadDir(full); err == nil {
			for _, e := range es {
				entries[e.Name()] = struct{}{}
			}
		}
	}

	if dir, err := o.resolveDirectory(o.contentBase(), p); err == nil {
		if files, err := dir.ListFiles(dir.RelativeTo(p)); err == nil {
			for _, f := range files {
				entries[f] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(entries))
	for e := range entries {
		out = append(out, e)
	}
	return out, nil
}

// Open resolves a descriptor for path. A write-capable open against a path
// that has no work-directory copy yet promotes it: the content bytes are
// copied into the work directory on first writable open, after which every
// subsequent access (read or write) goes straight to that copy.
func (o *Operations) Open(path string, flags int) (uint64, error) {
	p := stripLeadingSlash(path)

	o.fdMu.Lock()
	defer o.fdMu.Unlock()

	if flags&(os.O_WRONLY|os.O_RDWR) != 0 {
		if o.workDir == "" {
			return 0, ErrReadOnly
		}
		full := filepath.Join(o.workDir, p)
		if !exists(full) {
			if err := os.MkdirAll(filepath.Join(o.workDir, parentOf(p)), 0755); err != nil {
				return 0, hostErr("mkdir", full, err)
			}
			if err := o.promote(p); err != nil {
				return 0, err
			}
		}
		f, err := os.OpenFile(full, flags, 0644)
		if err != nil {
			return 0, hostErr("open", full, err)
		}
		return uint64(o.fds.allocate(NewHostHandle(f))), nil
	}

	h, err := o.getFileFromPartial(p)
	if err != nil {
		return 0, err
	}
	return uint64(o.fds.allocate(h)), nil
}

// promote copies path's content bytes into the work directory verbatim,
// the copy-on-write step that makes a subsequent writable open land on a
// real, mutable file.
func (o *Operations) promote(path string) error {
	src, err := o.getFile(o.contentBase(), path, os.O_RDONLY)
	if err != nil {
		return err
	}
	defer src.Close()

	size, err := src.Size()
	if err != nil {
		return hostErr("stat", path, err)
	}
	buf := make([]byte, size)
	if _, err := readFull(src, buf); err != nil {
		return hostErr("read", path, err)
	}

	full := filepath.Join(o.workDir, path)
	target, err := os.Create(full)
	if err != nil {
		return hostErr("create", full, err)
	}
	defer target.Close()
	if _, err := target.Write(buf); err != nil {
		return hostErr("write", full, err)
	}
	return nil
}

// Create always requires a work directory; it never promotes existing
// content, since by definition the path did not already exist.
func (o *Operations) Create(path string, mode uint32) (uint64, error) {
	if o.workDir == "" {
		return 0, ErrReadOnly
	}
	p := stripLeadingSlash(path)

	o.fdMu.Lock()
	defer o.fdMu.Unlock()

	full := filepath.Join(o.workDir, p)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return 0, hostErr("mkdir", full, err)
	}
	f, err := os.OpenFile(full, os.O_RDWR|os.O_CREATE, os.FileMode(mode))
	if err != nil {
		return 0, hostErr("create", full, err)
	}
	return uint64(o.fds.allocate(NewHostHandle(f))), nil
}

func (o *Operations) Read(fh uint64, buf []byte, offset int64) (int, error) {
	o.fdMu.Lock()
	h, ok := o.fds.get(int(fh))
	o.fdMu.Unlock()
	if !ok {
		return 0, ErrNotFound
	}
	return h.ReadAt(buf, offset)
}

func (o *Operations) Write(fh uint64, buf []byte, offset int64) (int, error) {
	o.fdMu.Lock()
	h, ok := o.fds.get(int(fh))
	o.fdMu.Unlock()
	if !ok {
		return 0, ErrNotFound
	}
	return h.WriteAt(buf, offset)
}

func (o *Operations) Release(fh uint64) error {
	o.fdMu.Lock()
	defer o.fdMu.Unlock()
	if h, ok := o.fds.get(int(fh)); ok {
		h.Close()
		o.fds.free(int(fh))
	}
	return nil
}

func (o *Operations) Flush(fh uint64) error { return nil }

func (o *Operations) Fsync(fh uint64, dataSyncOnly bool) error { return nil }

func (o *Operations) Utimens(path string, atime, mtime time.Time) error { return nil }

func (o *Operations) Mkdir(path string, mode uint32) error {
	if o.workDir == "" {
		return ErrReadOnly
	}
	p := stripLeadingSlash(path)
	full := filepath.Join(o.workDir, p)
	return hostErr("mkdir", full, os.MkdirAll(full, os.FileMode(mode)))
}

func (o *Operations) Rmdir(path string) error {
	if o.workDir == "" {
		return ErrReadOnly
	}
	full := filepath.Join(o.workDir, stripLeadingSlash(path))
	if !exists(full) {
		return ErrReadOnly
	}
	return hostErr("rmdir", full, os.Remove(full))
}

func (o *Operations) Unlink(path string) error {
	if o.workDir == "" {
		return ErrReadOnly
	}
	full := filepath.Join(o.workDir, stripLeadingSlash(path))
	if !exists(full) {
		return ErrReadOnly
	}
	return hostErr("unlink", full, os.Remove(full))
}

func (o *Operations) Rename(oldPath, newPath string) error {
	if o.workDir == "" {
		return ErrReadOnly
	}
	oldFull := filepath.Join(o.workDir, stripLeadingSlash(oldPath))
	if !exists(oldFull) {
		return ErrReadOnly
	}
	newFull := filepath.Join(o.workDir, stripLeadingSlash(newPath))
	return hostErr("rename", oldFull, os.Rename(oldFull, newFull))
}

func (o *Operations) Truncate(path string, size int64) error {
	if o.workDir == "" {
		return ErrReadOnly
	}
	full := filepath.Join(o.workDir, stripLeadingSlash(path))
	f, err := os.OpenFile(full, os.O_RDWR, 0644)
	if err != nil {
		return hostErr("truncate", full, err)
	}
	defer f.Close()
	return hostErr("truncate", full, f.Truncate(size))
}

// FSStat is the engine's filesystem-agnostic statfs record.
type FSStat struct {
	BlockSize   uint64
	Blocks      uint64
	BlocksFree  uint64
	BlocksAvail uint64
	Files       uint64
	FilesFree   uint64
	NameMax     uint64
}

// Statfs reports space usage rooted at the first (lowest-priority) content
// root, matching the original implementation's choice of a single
// representative filesystem for the mount's statvfs answer.
func (o *Operations) Statfs() (FSStat, error) {
	if len(o.content.roots) == 0 {
		return FSStat{}, ErrNotFound
	}
	return fillStatfs(o.content.roots[0])
}
