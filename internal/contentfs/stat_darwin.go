//go:build darwin

package contentfs

import (
	"syscall"
	"time"
)

func statCtime(sys *syscall.Stat_t) time.Time {
	return time.Unix(sys.Ctimespec.Sec, sys.Ctimespec.Nsec)
}
