//go:build !linux

package pipeline

import "os"

// ctime approximates the source creation time with the modification time
// on platforms without a portable status-change timestamp.
func ctime(info os.FileInfo) int64 {
	return info.ModTime().Unix()
}
