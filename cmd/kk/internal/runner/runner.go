// Package runner provides functionality to find and execute the git binary.
//
// Every invocation is read-only from the repository's point of view:
// GIT_OPTIONAL_LOCKS=0 stops `git status` from refreshing and rewriting the
// index, and GIT_TERMINAL_PROMPT=0 keeps git from ever blocking on a prompt.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/albertocavalcante/kk/internal/log"
)

// ErrGitNotFound is returned when the git binary cannot be located.
var ErrGitNotFound = errors.New("git binary not found")

// baseEnv is appended to the process environment for every git invocation.
var baseEnv = []string{
	"GIT_OPTIONAL_LOCKS=0",
	"GIT_TERMINAL_PROMPT=0",
	"LC_ALL=C",
}

// ExitError is returned when git runs but exits non-zero.
type ExitError struct {
	Args     []string
	Stderr   string
	ExitCode int
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Runner handles finding and executing the git binary.
type Runner struct {
	gitPath string   // Explicit git binary, empty means PATH lookup
	env     []string // Extra environment entries
}

// Option configures a Runner.
type Option func(*Runner)

// WithGitPath sets an explicit git binary.
func WithGitPath(path string) Option {
	return func(r *Runner) {
		r.gitPath = path
	}
}

// WithEnv adds KEY=VALUE entries to the git environment.
// Used primarily for testing.
func WithEnv(kv ...string) Option {
	return func(r *Runner) {
		r.env = append(r.env, kv...)
	}
}

// New creates a new Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindGit locates the git binary using the following search order:
// 1. Explicit path (WithGitPath)
// 2. PATH lookup
func (r *Runner) FindGit() (string, error) {
	if r.gitPath != "" {
		if fileExists(r.gitPath) {
			return r.gitPath, nil
		}
		return "", fmt.Errorf("%w: %s", ErrGitNotFound, r.gitPath)
	}

	if path, err := exec.LookPath("git"); err == nil {
		return path, nil
	}

	return "", ErrGitNotFound
}

// Output runs `git -C dir args...` and returns its stdout.
// A non-zero exit is reported as *ExitError; failing to start git is
// reported as ErrGitNotFound or the underlying exec error.
func (r *Runner) Output(ctx context.Context, dir string, args ...string) ([]byte, error) {
	gitPath, err := r.FindGit()
	if err != nil {
		return nil, err
	}

	argv := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, gitPath, argv...)
	cmd.Env = append(append(os.Environ(), baseEnv...), r.env...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug("running git", "dir", dir, "args", strings.Join(args, " "))
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{
				Args:     args,
				Stderr:   strings.TrimSpace(stderr.String()),
				ExitCode: exitErr.ExitCode(),
			}
		}
		return nil, fmt.Errorf("failed to run git: %w", err)
	}
	log.Trace("git output", "args", strings.Join(args, " "), "bytes", len(out))

	return out, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
