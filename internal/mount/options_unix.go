//go:build !windows

package mount

// defaultMountOptions returns the POSIX (libfuse) mount options: just an
// fsname, so `mount`/`df` show something recognizable. uid/gid/umask are
// left to libfuse's usual defaults (the mounting user).
func defaultMountOptions() []string {
	return []string{fsNameOption()}
}
