//go:build darwin

package contentfs

import "syscall"

func fillStatfs(path string) (FSStat, error) {
	var st syscall.Statfs_t
	if err := syscall.Statfs(path, &st); err != nil {
		return FSStat{}, hostErr("statfs", path, err)
	}
	return FSStat{
		BlockSize:   uint64(st.Bsize),
		Blocks:      st.Blocks,
		BlocksFree:  st.Bfree,
		BlocksAvail: uint64(st.Bavail),
		Files:       st.Files,
		FilesFree:   st.Ffree,
		NameMax:     255,
	}, nil
}
