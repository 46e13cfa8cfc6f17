//go:build darwin

package journal

import (
	"os"
	"syscall"
	"time"
)

// fileCreationTime reads the birth time macOS keeps in Birthtimespec.
func fileCreationTime(_ string, info os.FileInfo) (time.Time, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(stat.Birthtimespec.Sec), int64(stat.Birthtimespec.Nsec)), true
}
