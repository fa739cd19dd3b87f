package vcs

import (
	"context"
	"errors"
)

// ErrBackendUnavailable is returned when the VCS backend cannot be run at all.
// Callers recover by treating every entry as not_repo.
var ErrBackendUnavailable = errors.New("vcs backend unavailable")

// Report maps entry names to their status.
type Report map[string]Status

// Provider computes the status of the named children of dir.
//
// A directory outside any working tree is not an error: every name is
// reported as NotRepo. Implementations must not mutate repository state.
type Provider interface {
	Status(ctx context.Context, dir string, names []string) (Report, error)
}

// NotRepoReport returns a report with every name set to NotRepo.
func NotRepoReport(names []string) Report {
	report := make(Report, len(names))
	for _, name := range names {
		report[name] = NotRepo
	}
	return report
}
