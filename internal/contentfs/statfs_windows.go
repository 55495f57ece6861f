//go:build windows

package contentfs

import "golang.org/x/sys/windows"

// fillStatfs reports whole-volume free/total space via GetDiskFreeSpaceEx,
// matching the original implementation's shutil.disk_usage fallback on
// Windows (no statvfs-style per-inode accounting exists there).
func fillStatfs(path string) (FSStat, error) {
	var freeBytesAvail, totalBytes, totalFreeBytes uint64
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return FSStat{}, hostErr("statfs", path, err)
	}
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeBytesAvail, &totalBytes, &totalFreeBytes); err != nil {
		return FSStat{}, hostErr("statfs", path, err)
	}
	return FSStat{
		BlockSize:   1,
		Blocks:      totalBytes,
		BlocksFree:  totalFreeBytes,
		BlocksAvail: freeBytesAvail,
		NameMax:     255,
	}, nil
}
