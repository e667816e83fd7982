//go:build linux

package pipeline

import (
	"os"
	"syscall"
)

// ctime returns the status-change time of the file, the closest thing to
// a creation timestamp available here. Falls back to the modification
// time when the platform stat shape is unavailable.
func ctime(info os.FileInfo) int64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Ctim.Sec
	}
	return info.ModTime().Unix()
}
