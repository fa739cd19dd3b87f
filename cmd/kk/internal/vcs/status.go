// Package vcs reports the version-control status of directory entries.
package vcs

import "fmt"

// Status is the version-control state of one entry. Values are declared in
// ascending severity: when a directory's descendants disagree, the directory
// takes the most severe status.
type Status int

const (
	NotRepo Status = iota
	Ignored
	Clean
	Untracked
	Staged
	Modified
)

var statusNames = [...]string{
	NotRepo:   "not_repo",
	Ignored:   "ignored",
	Clean:     "clean",
	Untracked: "untracked",
	Staged:    "staged",
	Modified:  "modified",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Worse returns the more severe of a and b.
func Worse(a, b Status) Status {
	return max(a, b)
}

// Result is either Enabled(status) or Disabled.
// The zero value is Disabled.
type Result struct {
	status  Status
	enabled bool
}

// Disabled is the result for every entry when VCS awareness is off.
var Disabled = Result{}

// Enabled wraps a status computed by a provider.
func Enabled(s Status) Result {
	return Result{status: s, enabled: true}
}

// Status returns the wrapped status and whether VCS awareness was on.
func (r Result) Status() (Status, bool) {
	return r.status, r.enabled
}

// IsEnabled reports whether the result carries a status.
func (r Result) IsEnabled() bool {
	return r.enabled
}

func (r Result) String() string {
	if !r.enabled {
		return "disabled"
	}
	return r.status.String()
}

// MarshalText implements encoding.TextMarshaler.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
