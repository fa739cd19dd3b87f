//go:build !(linux || darwin || freebsd)

package scan

import "io/fs"

// fillPlatform fills what the portable FileInfo offers.
func fillPlatform(e *Entry, info fs.FileInfo, _ *idCache) {
	e.AccessTime = info.ModTime()
	e.ChangeTime = info.ModTime()
	e.Blocks = (info.Size() + 511) / 512
	e.Owner = "-"
	e.Group = "-"
}
