// Package listing joins scanner output with VCS status and orders the result.
package listing

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/albertocavalcante/kk/cmd/kk/internal/scan"
	"github.com/albertocavalcante/kk/cmd/kk/internal/vcs"
	"github.com/albertocavalcante/kk/internal/log"
)

// Entry is a scanned entry with its VCS result.
type Entry struct {
	scan.Entry
	VCS vcs.Result
}

// Listing is the ordered, aggregated content of one target directory.
type Listing struct {
	Path        string // as given on the command line
	Dir         string // absolute
	Entries     []Entry
	TotalSize   int64
	EntryCount  int
	TotalBlocks int64
	VCSEnabled  bool
}

// New computes the aggregates over entries, which must already be sorted.
func New(path, dir string, entries []Entry, vcsEnabled bool) *Listing {
	l := &Listing{
		Path:       path,
		Dir:        dir,
		Entries:    entries,
		EntryCount: len(entries),
		VCSEnabled: vcsEnabled,
	}
	for _, e := range entries {
		l.TotalSize += e.Size
		l.TotalBlocks += e.Blocks
	}
	return l
}

// Join pairs every scanned entry with exactly one VCS result.
//
// With VCS disabled every result is Disabled. A nil report while enabled
// means the backend was unavailable and every entry is not_repo. A name the
// report does not mention is logged and treated as not_repo.
func Join(scanned []scan.Entry, report vcs.Report, enabled bool) []Entry {
	entries := make([]Entry, len(scanned))
	for i, se := range scanned {
		entries[i] = Entry{Entry: se, VCS: vcs.Disabled}
		if !enabled {
			continue
		}
		if report == nil {
			entries[i].VCS = vcs.Enabled(vcs.NotRepo)
			continue
		}
		st, ok := report[se.Name]
		if !ok {
			log.Warn("no vcs status for entry", "name", se.Name)
			st = vcs.NotRepo
		}
		entries[i].VCS = vcs.Enabled(st)
	}
	return entries
}

// BuildConfig wires one target through the pipeline.
type BuildConfig struct {
	Path     string        // as given
	Scanner  *scan.Scanner // rooted at the absolute path
	Provider vcs.Provider  // nil disables VCS awareness
	Sort     SortOptions
}

// Build scans the target, queries VCS status, joins and sorts.
// An unavailable VCS backend degrades to not_repo with one warning.
func Build(ctx context.Context, cfg BuildConfig) (*Listing, error) {
	dir := cfg.Scanner.Root()

	scanned, err := cfg.Scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	enabled := cfg.Provider != nil
	var report vcs.Report
	if enabled {
		names := make([]string, len(scanned))
		for i, e := range scanned {
			names[i] = e.Name
		}
		report, err = cfg.Provider.Status(ctx, dir, names)
		if err != nil {
			if !errors.Is(err, vcs.ErrBackendUnavailable) {
				return nil, err
			}
			log.Warn("vcs status unavailable", "dir", dir, "error", err)
			report = nil
		}
	}

	entries := Join(scanned, report, enabled)
	Sort(entries, cfg.Sort)

	log.Debug("listing built", "path", cfg.Path, "entries", len(entries))
	return New(cfg.Path, filepath.Clean(dir), entries, enabled), nil
}
