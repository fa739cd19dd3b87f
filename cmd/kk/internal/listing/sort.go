package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortKey selects the primary ordering.
type SortKey int

const (
	SortName SortKey = iota
	SortNone
	SortSize
	SortTime
	SortChangeTime
	SortAccessTime
)

// ParseSortKey maps a sort word to a key. "status" is an alias of ctime,
// "access" and "use" are aliases of atime.
func ParseSortKey(word string) (SortKey, error) {
	switch word {
	case "name":
		return SortName, nil
	case "none":
		return SortNone, nil
	case "size":
		return SortSize, nil
	case "time":
		return SortTime, nil
	case "ctime", "status":
		return SortChangeTime, nil
	case "atime", "access", "use":
		return SortAccessTime, nil
	default:
		return 0, fmt.Errorf("invalid sort key %q", word)
	}
}

// SortOptions is the sort policy.
type SortOptions struct {
	Key             SortKey
	Reverse         bool
	CaseInsensitive bool
	GroupDirsFirst  bool
}

// Sort orders entries in place. Directory grouping is applied before the key
// and is not affected by Reverse. Ties on non-name keys fall back to name.
// The sort is stable, so SortNone keeps the input order.
func Sort(entries []Entry, opts SortOptions) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if opts.GroupDirsFirst {
			if c := groupRank(a) - groupRank(b); c != 0 {
				return c
			}
		}
		c := compareKey(a, b, opts)
		if opts.Reverse {
			c = -c
		}
		return c
	})
}

func groupRank(e Entry) int {
	if e.IsDir() {
		return 0
	}
	return 1
}

func compareKey(a, b Entry, opts SortOptions) int {
	var c int
	switch opts.Key {
	case SortNone:
		return 0
	case SortName:
		return compareName(a.Name, b.Name, opts.CaseInsensitive)
	case SortSize:
		c = cmp.Compare(b.Size, a.Size)
	case SortTime:
		c = newestFirst(a.ModTime, b.ModTime)
	case SortChangeTime:
		c = newestFirst(a.ChangeTime, b.ChangeTime)
	case SortAccessTime:
		c = newestFirst(a.AccessTime, b.AccessTime)
	}
	if c != 0 {
		return c
	}
	return compareName(a.Name, b.Name, opts.CaseInsensitive)
}

func newestFirst(a, b time.Time) int {
	return b.Compare(a)
}

func compareName(a, b string, fold bool) int {
	if fold {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}
