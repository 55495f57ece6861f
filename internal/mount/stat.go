package mount

import (
	"time"

	"github.com/winfsp/cgofuse/fuse"

	"github.com/zeldamods/botwfstools/internal/contentfs"
)

func toTimespec(t time.Time) fuse.Timespec {
	return fuse.Timespec{Sec: t.Unix(), Nsec: int64(t.Nanosecond())}
}

func fromTimespec(ts fuse.Timespec) time.Time {
	return time.Unix(ts.Sec, ts.Nsec)
}

// toFuseStat translates the engine's platform-agnostic Stat into the
// fuse.Stat_t cgofuse expects from Getattr.
func toFuseStat(st contentfs.Stat) fuse.Stat_t {
	var out fuse.Stat_t
	if st.IsDir() {
		out.Mode = fuse.S_IFDIR | st.Perm
	} else {
		out.Mode = fuse.S_IFREG | st.Perm
	}
	out.Nlink = st.Nlink
	out.Uid = st.UID
	out.Gid = st.GID
	out.Size = st.Size
	out.Blocks = st.Blocks
	out.Atim = toTimespec(st.Atime)
	out.Mtim = toTimespec(st.Mtime)
	out.Ctim = toTimespec(st.Ctime)
	return out
}

// toFuseStatfs translates the engine's FSStat into fuse.Statfs_t.
func toFuseStatfs(fs contentfs.FSStat) fuse.Statfs_t {
	return fuse.Statfs_t{
		Bsize:   fs.BlockSize,
		Frsize:  fs.BlockSize,
		Blocks:  fs.Blocks,
		Bfree:   fs.BlocksFree,
		Bavail:  fs.BlocksAvail,
		Files:   fs.Files,
		Ffree:   fs.FilesFree,
		Namemax: fs.NameMax,
	}
}
