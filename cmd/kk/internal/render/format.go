package render

import (
	"io/fs"
	"strconv"
	"time"
)

// sixMonths is the age beyond which dates show the year instead of the time.
const sixMonths = 182 * 24 * time.Hour

const (
	recentLayout = "_2 Jan 15:04"
	oldLayout    = "_2 Jan  2006"
)

// FormatSize renders a byte count. Human sizes round up, like numfmt --round=up.
func FormatSize(size int64, human, si bool) string {
	if !human || size < 0 {
		return strconv.FormatInt(size, 10)
	}

	base := int64(1024)
	if si {
		base = 1000
	}
	if size < base {
		return strconv.FormatInt(size, 10)
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	val := size
	unit := 0
	for val >= base*base && unit < len(units)-1 {
		val = ceilDiv(val, base)
		unit++
	}
	val = ceilDiv(val, base)
	// Rounding up may carry into the next unit
	if val >= base && unit < len(units)-1 {
		val = ceilDiv(val, base)
		unit++
	}
	return strconv.FormatInt(val, 10) + units[unit]
}

func ceilDiv(a, b int64) int64 {
	return a/b + min(a%b, 1)
}

// FormatDate renders t in loc: time of day when younger than six months
// or in the future, the year otherwise.
func FormatDate(t, now time.Time, loc *time.Location) string {
	age := now.Sub(t)
	if age < sixMonths {
		return t.In(loc).Format(recentLayout)
	}
	return t.In(loc).Format(oldLayout)
}

// FormatMode renders ls-style permissions, for example "drwxr-xr-x".
func FormatMode(m fs.FileMode) string {
	var b [10]byte
	b[0] = typeChar(m)

	const rwx = "rwxrwxrwx"
	perm := m.Perm()
	for i := range 9 {
		if perm&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		} else {
			b[i+1] = '-'
		}
	}

	if m&fs.ModeSetuid != 0 {
		b[3] = special(b[3], 's')
	}
	if m&fs.ModeSetgid != 0 {
		b[6] = special(b[6], 's')
	}
	if m&fs.ModeSticky != 0 {
		b[9] = special(b[9], 't')
	}
	return string(b[:])
}

func typeChar(m fs.FileMode) byte {
	switch {
	case m.IsDir():
		return 'd'
	case m&fs.ModeSymlink != 0:
		return 'l'
	case m&fs.ModeNamedPipe != 0:
		return 'p'
	case m&fs.ModeSocket != 0:
		return 's'
	case m&fs.ModeCharDevice != 0:
		return 'c'
	case m&fs.ModeDevice != 0:
		return 'b'
	case m.IsRegular():
		return '-'
	default:
		return '?'
	}
}

// special overlays a setuid/setgid/sticky bit: lower case when the
// execute bit is set, upper case otherwise.
func special(exec byte, c byte) byte {
	if exec == '-' {
		return c - ('a' - 'A')
	}
	return c
}
