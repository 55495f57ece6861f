//go:build windows

package mount

import "fmt"

// winfspUnmappedID is WinFsp's sentinel uid/gid value meaning "don't
// translate POSIX ownership; report the file's actual Windows owner".
const winfspUnmappedID = 65792

// defaultMountOptions returns the WinFsp mount options: an fsname plus the
// uid/gid/umask combination that disables WinFsp's POSIX-ownership
// emulation. On Windows the engine's Stat records carry no ownership of
// their own: contentfs leaves UID and GID at zero there.
func defaultMountOptions() []string {
	return []string{
		fsNameOption(),
		fmt.Sprintf("-ouid=%d", winfspUnmappedID),
		fmt.Sprintf("-ogid=%d", winfspUnmappedID),
		"-oumask=0",
	}
}
