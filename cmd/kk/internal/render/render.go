// Package render formats listings as a columnar text table, JSON or YAML.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/albertocavalcante/kk/cmd/kk/internal/listing"
	"github.com/albertocavalcante/kk/pkg/config"
)

// Options controls rendering.
type Options struct {
	Format   string
	Human    bool // 1K, 234M, 2G
	SI       bool // powers of 1000 with Human
	Color    bool
	Palette  Palette        // file-type colours; zero value means DefaultPalette
	Now      time.Time      // reference for date layout and age colours; zero means time.Now
	Location *time.Location // nil means time.Local
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Write renders listings to w in the configured format.
func Write(w io.Writer, listings []*listing.Listing, opts Options) error {
	switch opts.Format {
	case config.FormatText, "":
		return writeText(w, listings, opts)
	case config.FormatJSON:
		return writeJSON(w, listings, opts)
	case config.FormatYAML:
		return writeYAML(w, listings, opts)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}
