//go:build windows

package contentfs

import "os"

// fillPlatformStat is a no-op on Windows: os.FileInfo.Sys() exposes a
// syscall.Win32FileAttributeData with no uid/gid/ctime concept, and
// internal/mount supplies the Windows-specific defaults (uid/gid 65792,
// umask 0) as mount options instead.
func fillPlatformStat(st *Stat, info os.FileInfo) {
	_ = info
}
