package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/kk/internal/log"
)

var (
	// ErrPathNotFound is returned when the scan root does not exist.
	ErrPathNotFound = errors.New("no such file or directory")

	// ErrNotADirectory is returned when the scan root is not a directory.
	ErrNotADirectory = errors.New("not a directory")
)

// Filter restricts which kinds are listed.
type Filter int

const (
	FilterAll      Filter = iota
	FilterDirsOnly        // -d
	FilterNoDirs          // -n
)

// defaultWorkers is used when Config.Workers is not positive.
const defaultWorkers = 8

// Config configures the scanner.
type Config struct {
	Root       string
	ShowHidden bool   // include names starting with "."
	Filter     Filter // kind filter
	Workers    int    // concurrent lstat calls
}

// Scanner lists the immediate children of a directory.
type Scanner struct {
	root       string
	showHidden bool
	filter     Filter
	workers    int
}

// NewScanner creates a scanner with the given config.
func NewScanner(cfg Config) *Scanner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Scanner{
		root:       cfg.Root,
		showHidden: cfg.ShowHidden,
		filter:     cfg.Filter,
		workers:    workers,
	}
}

// Root returns the directory being scanned.
func (s *Scanner) Root() string {
	return s.root
}

// Scan reads the root directory and stats every child.
//
// The root itself is followed if it is a symlink. Children that cannot be
// stat'ed are skipped with a warning. The returned order is the order the
// directory was read in; callers sort.
func (s *Scanner) Scan(ctx context.Context) ([]Entry, error) {
	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	names, err := s.readNames()
	if err != nil {
		return nil, err
	}

	return s.statAll(ctx, names)
}

// checkRoot verifies the root exists and is a directory.
func (s *Scanner) checkRoot() error {
	info, err := os.Stat(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot access %s: %w", s.root, ErrPathNotFound)
		}
		return fmt.Errorf("cannot access %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot list %s: %w", s.root, ErrNotADirectory)
	}
	return nil
}

// readNames reads the directory once and applies name and type filters.
func (s *Scanner) readNames() ([]string, error) {
	f, err := os.Open(s.root)
	if err != nil {
		return nil, fmt.Errorf("cannot open directory %s: %w", s.root, err)
	}
	defer func() { _ = f.Close() }()

	dirents, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", s.root, err)
	}

	names := make([]string, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		if !s.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		// Type bits come from the dirent, so symlinks to directories are not directories
		switch s.filter {
		case FilterDirsOnly:
			if !d.IsDir() {
				continue
			}
		case FilterNoDirs:
			if d.IsDir() {
				continue
			}
		}
		names = append(names, name)
	}
	return names, nil
}

// statAll lstats names on a bounded pool. Each worker owns one slot of the
// result buffer, so no locking is needed and input order is preserved.
func (s *Scanner) statAll(ctx context.Context, names []string) ([]Entry, error) {
	slots := make([]*Entry, len(names))
	ids := newIDCache()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(s.root, name)
			e, err := statEntry(path, name, ids)
			if err != nil {
				log.Warn("skipping entry", "name", name, "error", unwrapPathError(err))
				return nil
			}
			slots[i] = &e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(slots))
	for _, e := range slots {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

// statEntry builds an Entry from lstat.
func statEntry(path, name string, ids *idCache) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		Name:    name,
		Path:    path,
		Kind:    KindOf(info.Mode()),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		Links:   1,
	}
	if e.Size < 0 {
		e.Size = 0
	}

	fillPlatform(&e, info, ids)

	if e.Kind == KindSymlink {
		if target, err := os.Readlink(path); err == nil {
			e.Target = target
		}
	}

	return e, nil
}

// unwrapPathError drops the path from *fs.PathError since the name is logged separately.
func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
