//go:build !windows

package contentfs

import (
	"os"
	"syscall"
)

// fillPlatformStat pulls uid, gid, exact block count, and ctime from the
// syscall.Stat_t POSIX exposes through os.FileInfo.Sys().
func fillPlatformStat(st *Stat, info os.FileInfo) {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	st.UID = sys.Uid
	st.GID = sys.Gid
	st.Nlink = uint32(sys.Nlink)
	st.Blocks = sys.Blocks
	st.Ctime = statCtime(sys)
}
