//go:build linux || darwin || freebsd

package scan

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// fillPlatform adds link count, ownership, block usage and the access and
// change times. On failure the portable fields from info are kept.
func fillPlatform(e *Entry, info fs.FileInfo, ids *idCache) {
	e.AccessTime = info.ModTime()
	e.ChangeTime = info.ModTime()

	var st unix.Stat_t
	if err := unix.Lstat(e.Path, &st); err != nil {
		return
	}

	e.Links = uint64(st.Nlink)
	e.Blocks = int64(st.Blocks)
	e.Owner = ids.user(st.Uid)
	e.Group = ids.group(st.Gid)
	e.AccessTime = time.Unix(st.Atim.Unix())
	e.ChangeTime = time.Unix(st.Ctim.Unix())
}
