// Package scan enumerates the immediate children of a directory with the
// metadata an ls-style listing needs.
package scan

import (
	"io/fs"
	"time"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindOther
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// KindOf derives the kind from lstat mode bits.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Entry represents one immediate child of the scanned directory.
// Symlinks describe the link itself, never the target.
type Entry struct {
	Name       string
	Path       string
	Kind       Kind
	Size       int64
	Mode       fs.FileMode
	ModTime    time.Time
	AccessTime time.Time
	ChangeTime time.Time
	Links      uint64
	Owner      string
	Group      string
	Blocks     int64  // 512-byte blocks
	Target     string // symlink target
}

// IsDir reports whether the entry itself is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}
