package listing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/albertocavalcante/kk/cmd/kk/internal/scan"
	"github.com/albertocavalcante/kk/cmd/kk/internal/vcs"
)

// fakeProvider returns a fixed report or error.
type fakeProvider struct {
	report vcs.Report
	err    error
	calls  int
}

func (f *fakeProvider) Status(_ context.Context, _ string, names []string) (vcs.Report, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.report != nil {
		return f.report, nil
	}
	return vcs.NotRepoReport(names), nil
}

func scanned(names ...string) []scan.Entry {
	out := make([]scan.Entry, len(names))
	for i, n := range names {
		out[i] = scan.Entry{Name: n, Kind: scan.KindFile, Size: int64(i + 1), Blocks: 8}
	}
	return out
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name    string
		report  vcs.Report
		enabled bool
		want    []vcs.Result
	}{
		{
			name:    "disabled",
			report:  vcs.Report{"a": vcs.Clean},
			enabled: false,
			want:    []vcs.Result{vcs.Disabled, vcs.Disabled},
		},
		{
			name:    "backend unavailable",
			report:  nil,
			enabled: true,
			want:    []vcs.Result{vcs.Enabled(vcs.NotRepo), vcs.Enabled(vcs.NotRepo)},
		},
		{
			name:    "matched",
			report:  vcs.Report{"a": vcs.Clean, "b": vcs.Untracked},
			enabled: true,
			want:    []vcs.Result{vcs.Enabled(vcs.Clean), vcs.Enabled(vcs.Untracked)},
		},
		{
			name:    "missing name becomes not_repo",
			report:  vcs.Report{"a": vcs.Modified},
			enabled: true,
			want:    []vcs.Result{vcs.Enabled(vcs.Modified), vcs.Enabled(vcs.NotRepo)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Join(scanned("a", "b"), tt.report, tt.enabled)
			if len(got) != 2 {
				t.Fatalf("Join() returned %d entries, want 2", len(got))
			}
			for i, e := range got {
				if e.VCS != tt.want[i] {
					t.Errorf("%s: VCS = %v, want %v", e.Name, e.VCS, tt.want[i])
				}
			}
		})
	}
}

func TestNew_Aggregates(t *testing.T) {
	entries := Join(scanned("a", "b", "c"), nil, false)
	l := New("x", "/abs/x", entries, false)

	if l.EntryCount != len(l.Entries) || l.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", l.EntryCount)
	}
	if l.TotalSize != 6 {
		t.Errorf("TotalSize = %d, want 6", l.TotalSize)
	}
	if l.TotalBlocks != 24 {
		t.Errorf("TotalBlocks = %d, want 24", l.TotalBlocks)
	}
}

func TestNew_Empty(t *testing.T) {
	l := New(".", "/abs", nil, true)
	if l.EntryCount != 0 || l.TotalSize != 0 {
		t.Errorf("empty listing = %+v", l)
	}
}

func buildFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for i, name := range []string{"b.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), make([]byte, 10*(i+1)), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "zdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestBuild(t *testing.T) {
	dir := buildFixture(t)
	provider := &fakeProvider{report: vcs.Report{"a.txt": vcs.Clean, "b.txt": vcs.Untracked, "zdir": vcs.Modified}}

	l, err := Build(context.Background(), BuildConfig{
		Path:     "rel",
		Scanner:  scan.NewScanner(scan.Config{Root: dir}),
		Provider: provider,
		Sort:     SortOptions{Key: SortName, GroupDirsFirst: true},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if l.Path != "rel" || !l.VCSEnabled {
		t.Errorf("listing = path %q vcs %v", l.Path, l.VCSEnabled)
	}
	got := fmt.Sprint(entryNames(l.Entries))
	if got != "[zdir a.txt b.txt]" {
		t.Errorf("order = %s, want [zdir a.txt b.txt]", got)
	}
	if l.Entries[2].VCS != vcs.Enabled(vcs.Untracked) {
		t.Errorf("b.txt VCS = %v, want untracked", l.Entries[2].VCS)
	}
	if l.TotalSize != 30+l.Entries[0].Size {
		t.Errorf("TotalSize = %d, want sum of sizes", l.TotalSize)
	}
}

func TestBuild_NoProvider(t *testing.T) {
	l, err := Build(context.Background(), BuildConfig{
		Path:    ".",
		Scanner: scan.NewScanner(scan.Config{Root: buildFixture(t)}),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if l.VCSEnabled {
		t.Error("listing without provider should not be VCS-aware")
	}
	for _, e := range l.Entries {
		if e.VCS.IsEnabled() {
			t.Errorf("%s: VCS = %v, want disabled", e.Name, e.VCS)
		}
	}
}

func TestBuild_BackendUnavailable(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("%w: git missing", vcs.ErrBackendUnavailable)}

	l, err := Build(context.Background(), BuildConfig{
		Scanner:  scan.NewScanner(scan.Config{Root: buildFixture(t)}),
		Provider: provider,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, e := range l.Entries {
		if e.VCS != vcs.Enabled(vcs.NotRepo) {
			t.Errorf("%s: VCS = %v, want not_repo", e.Name, e.VCS)
		}
	}
}

func TestBuild_ProviderErrorIsFatal(t *testing.T) {
	provider := &fakeProvider{err: context.Canceled}

	_, err := Build(context.Background(), BuildConfig{
		Scanner:  scan.NewScanner(scan.Config{Root: buildFixture(t)}),
		Provider: provider,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestBuild_ScanErrorSkipsProvider(t *testing.T) {
	provider := &fakeProvider{}

	_, err := Build(context.Background(), BuildConfig{
		Scanner:  scan.NewScanner(scan.Config{Root: filepath.Join(t.TempDir(), "missing")}),
		Provider: provider,
	})
	if !errors.Is(err, scan.ErrPathNotFound) {
		t.Errorf("Build() error = %v, want ErrPathNotFound", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times after scan failure", provider.calls)
	}
}

func entryNames(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
