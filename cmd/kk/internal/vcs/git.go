package vcs

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/albertocavalcante/kk/cmd/kk/internal/runner"
	"github.com/albertocavalcante/kk/internal/log"
)

// Git is a Provider backed by the git CLI.
type Git struct {
	runner *runner.Runner
}

// NewGit creates a git-backed provider.
func NewGit(r *runner.Runner) *Git {
	return &Git{runner: r}
}

// Status implements Provider.
func (g *Git) Status(ctx context.Context, dir string, names []string) (Report, error) {
	logger := log.Component("vcs")

	out, err := g.runner.Output(ctx, dir, "rev-parse", "--is-inside-work-tree", "--show-prefix")
	if err != nil {
		var exitErr *runner.ExitError
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.As(err, &exitErr):
			logger.Debug("not a working tree", "dir", dir, "stderr", exitErr.Stderr)
			return NotRepoReport(names), nil
		default:
			return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
		}
	}
	inside, prefix := parseRevParse(out)
	if !inside {
		// Inside .git or a bare repository: git knows the repository but has no work tree
		logger.Debug("not a working tree", "dir", dir)
		return NotRepoReport(names), nil
	}

	statusOut, err := g.runner.Output(ctx, dir,
		"status", "--porcelain=v1", "-z", "--ignored=traditional", "--untracked-files=normal", "--", ".")
	if err != nil {
		return nil, g.queryError(ctx, err)
	}
	changes, err := parsePorcelain(statusOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	lsOut, err := g.runner.Output(ctx, dir, "ls-files", "-z", "--full-name", "--", ".")
	if err != nil {
		return nil, g.queryError(ctx, err)
	}

	report := fold(names, prefix, changes, splitNUL(lsOut))
	logger.Debug("status computed", "dir", dir, "prefix", prefix, "changes", len(changes), "entries", len(report))
	if tracer := log.V(log.VerbosityTrace); tracer.Enabled(ctx, log.LevelTrace) {
		for _, name := range slices.Sorted(maps.Keys(report)) {
			tracer.Log(ctx, log.LevelTrace, "entry status", "component", "vcs", "name", name, "status", report[name])
		}
	}
	return report, nil
}

// parseRevParse reads the output of `rev-parse --is-inside-work-tree --show-prefix`.
func parseRevParse(out []byte) (inside bool, prefix string) {
	lines := strings.Split(strings.ReplaceAll(string(out), "\r\n", "\n"), "\n")
	inside = strings.TrimSpace(lines[0]) == "true"
	if len(lines) > 1 {
		prefix = lines[1]
	}
	return inside, prefix
}

func (g *Git) queryError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
}

// fold reduces repository-relative records to one status per listed name.
//
// Changed descendants decide first, most severe wins. Otherwise a tracked
// name is clean, an ignored one is ignored and .git is ignored. Inside an
// untracked or ignored directory the remaining names inherit its status;
// elsewhere anything git did not mention (an empty directory, say) is
// untracked.
func fold(names []string, prefix string, changes []change, tracked []string) Report {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	fallback := Untracked
	changed := make(map[string]Status)
	ignored := make(map[string]bool)
	for _, c := range changes {
		// git collapses an untracked or ignored tree into one "dir/" record
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(prefix, c.Path) {
			fallback = classify(c.X, c.Y)
			continue
		}
		name := firstComponent(c.Path, prefix)
		if name == "" || !wanted[name] {
			continue
		}
		st := classify(c.X, c.Y)
		if st == Ignored {
			ignored[name] = true
			continue
		}
		if prev, ok := changed[name]; ok {
			st = Worse(prev, st)
		}
		changed[name] = st
	}

	isTracked := make(map[string]bool)
	for _, p := range tracked {
		if name := firstComponent(p, prefix); name != "" && wanted[name] {
			isTracked[name] = true
		}
	}

	report := make(Report, len(names))
	for _, name := range names {
		switch {
		case hasKey(changed, name):
			report[name] = changed[name]
		case isTracked[name]:
			report[name] = Clean
		case ignored[name], name == ".git":
			report[name] = Ignored
		default:
			report[name] = fallback
		}
	}
	return report
}

func hasKey(m map[string]Status, k string) bool {
	_, ok := m[k]
	return ok
}
