package vcs

import (
	"bytes"
	"fmt"
	"strings"
)

// change is one record of `git status --porcelain=v1 -z`.
type change struct {
	X, Y byte
	Path string // relative to the repository root
}

// parsePorcelain parses NUL-terminated porcelain v1 records.
// Rename and copy records carry the source path in an extra field, which is skipped.
func parsePorcelain(data []byte) ([]change, error) {
	var changes []change
	fields := splitNUL(data)
	for i := 0; i < len(fields); i++ {
		rec := fields[i]
		if len(rec) < 4 || rec[2] != ' ' {
			return nil, fmt.Errorf("malformed status record %q", rec)
		}
		c := change{X: rec[0], Y: rec[1], Path: rec[3:]}
		if c.X == 'R' || c.X == 'C' || c.Y == 'R' || c.Y == 'C' {
			i++
		}
		changes = append(changes, c)
	}
	return changes, nil
}

// classify maps an XY pair to a status.
func classify(x, y byte) Status {
	switch {
	case x == '?' && y == '?':
		return Untracked
	case x == '!' && y == '!':
		return Ignored
	case x == 'U' || y == 'U', x == 'A' && y == 'A', x == 'D' && y == 'D':
		return Modified
	case y != ' ':
		return Modified
	case x != ' ':
		return Staged
	default:
		return Clean
	}
}

// splitNUL splits -z output into fields, dropping the trailing empty one.
func splitNUL(data []byte) []string {
	data = bytes.TrimSuffix(data, []byte{0})
	if len(data) == 0 {
		return nil
	}
	return strings.Split(string(data), "\x00")
}

// firstComponent returns the first path segment of repoPath below prefix,
// or "" when repoPath is not below prefix.
func firstComponent(repoPath, prefix string) string {
	if !strings.HasPrefix(repoPath, prefix) {
		return ""
	}
	rel := strings.TrimSuffix(repoPath[len(prefix):], "/")
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		rel = rel[:i]
	}
	return rel
}
