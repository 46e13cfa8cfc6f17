// Linux kernels/filesystems may expose birth time via statx (STATX_BTIME).
// When unavailable the entry simply carries no creation time.

//go:build linux

package journal

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// fileCreationTime attempts to read true file birth time using statx.
func fileCreationTime(path string, _ os.FileInfo) (time.Time, bool) {
	if path == "" {
		return time.Time{}, false
	}

	var stat unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stat); err != nil {
		return time.Time{}, false
	}
	return birthTimeFromStatx(stat)
}

func birthTimeFromStatx(stat unix.Statx_t) (time.Time, bool) {
	if stat.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false
	}
	return time.Unix(stat.Btime.Sec, int64(stat.Btime.Nsec)), true
}
