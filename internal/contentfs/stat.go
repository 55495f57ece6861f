package contentfs

import "time"

// fileKind distinguishes the two stat shapes the engine ever synthesizes.
type fileKind int

const (
	kindRegular fileKind = iota
	kindDirectory
)

// Stat is the engine's filesystem-agnostic attribute record. internal/mount
// translates it into whatever the mount host's native stat type is.
type Stat struct {
	Mode   fileKind
	Perm   uint32 // permission bits, e.g. 0644 or 0755
	Nlink  uint32
	UID    uint32
	GID    uint32
	Size   int64
	Atime  time.Time
	Ctime  time.Time
	Mtime  time.Time
	Blocks int64
}

// IsDir reports whether st describes a directory.
func (st Stat) IsDir() bool { return st.Mode == kindDirectory }

// asDirectory returns a copy of st rewritten to describe a directory:
// directory bits set, owner rwx granted on top of whatever permission bits
// the archive file already carried, size forced to zero. Used both for
// archive files appearing as directories and for archive-internal
// synthesized subdirectories.
func (st Stat) asDirectory() Stat {
	st.Mode = kindDirectory
	st.Perm |= 0700
	st.Size = 0
	return st
}

// asRegularFile returns a copy of st rewritten to describe a regular file:
// exec bits cleared, owner read+write granted, sized to size. Used for
// archive members.
func (st Stat) asRegularFile(size int64) Stat {
	st.Mode = kindRegular
	st.Perm = (st.Perm &^ 0111) | 0600
	st.Size = size
	return st
}
