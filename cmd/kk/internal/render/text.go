package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/albertocavalcante/kk/cmd/kk/internal/listing"
)

// row holds the uncoloured cells of one entry.
type row struct {
	mode, links, owner, group, size, date string
}

// widths are display widths, not byte lengths.
type widths struct {
	links, owner, group, size int
}

func writeText(w io.Writer, listings []*listing.Listing, opts Options) error {
	st := newStyler(w, opts)

	var b strings.Builder
	for i, l := range listings {
		if i > 0 {
			b.WriteByte('\n')
		}
		if len(listings) > 1 {
			b.WriteString(l.Path)
			b.WriteString(":\n")
		}
		writeListing(&b, l, opts, st)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeListing(b *strings.Builder, l *listing.Listing, opts Options, st *styler) {
	now := opts.now()
	loc := opts.location()

	rows := make([]row, len(l.Entries))
	var wd widths
	for i, e := range l.Entries {
		r := row{
			mode:  FormatMode(e.Mode),
			links: strconv.FormatUint(e.Links, 10),
			owner: orDash(e.Owner),
			group: orDash(e.Group),
			size:  FormatSize(e.Size, opts.Human, opts.SI),
			date:  FormatDate(e.ModTime, now, loc),
		}
		wd.links = max(wd.links, runewidth.StringWidth(r.links))
		wd.owner = max(wd.owner, runewidth.StringWidth(r.owner))
		wd.group = max(wd.group, runewidth.StringWidth(r.group))
		wd.size = max(wd.size, runewidth.StringWidth(r.size))
		rows[i] = r
	}

	for i, e := range l.Entries {
		r := rows[i]
		b.WriteString(r.mode)
		b.WriteByte(' ')
		b.WriteString(runewidth.FillLeft(r.links, wd.links))
		b.WriteByte(' ')
		b.WriteString(st.owner(runewidth.FillRight(r.owner, wd.owner)))
		b.WriteByte(' ')
		b.WriteString(st.owner(runewidth.FillRight(r.group, wd.group)))
		b.WriteByte(' ')
		b.WriteString(st.size(runewidth.FillLeft(r.size, wd.size), e.Size))
		b.WriteByte(' ')
		b.WriteString(st.date(r.date, now.Sub(e.ModTime)))
		if l.VCSEnabled {
			status, _ := e.VCS.Status()
			b.WriteByte(' ')
			b.WriteString(st.marker(status))
		}
		b.WriteByte(' ')
		b.WriteString(st.name(displayName(e.Name), e.Mode))
		if e.Target != "" {
			b.WriteString(" -> ")
			b.WriteString(displayName(e.Target))
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(b, "total %s in %s\n", FormatSize(l.TotalSize, opts.Human, opts.SI), countEntries(l.EntryCount))
}

func countEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return strconv.Itoa(n) + " entries"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// displayName replaces control characters so a name cannot drive the terminal.
func displayName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '?'
		}
		return r
	}, name)
}
