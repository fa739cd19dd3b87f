package vcs

import (
	"maps"
	"slices"
	"testing"
)

func TestParsePorcelain(t *testing.T) {
	data := []byte(" M a.txt\x00R  new.txt\x00old.txt\x00?? dir/\x00!! build/\x00")

	got, err := parsePorcelain(data)
	if err != nil {
		t.Fatalf("parsePorcelain() error = %v", err)
	}
	want := []change{
		{X: ' ', Y: 'M', Path: "a.txt"},
		{X: 'R', Y: ' ', Path: "new.txt"},
		{X: '?', Y: '?', Path: "dir/"},
		{X: '!', Y: '!', Path: "build/"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("parsePorcelain() = %+v, want %+v", got, want)
	}
}

func TestParsePorcelain_Empty(t *testing.T) {
	got, err := parsePorcelain(nil)
	if err != nil || len(got) != 0 {
		t.Errorf("parsePorcelain(nil) = %v, %v; want no changes", got, err)
	}
}

func TestParsePorcelain_Malformed(t *testing.T) {
	if _, err := parsePorcelain([]byte("M\x00")); err == nil {
		t.Error("parsePorcelain() expected error for truncated record")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		xy   string
		want Status
	}{
		{"??", Untracked},
		{"!!", Ignored},
		{" M", Modified},
		{" D", Modified},
		{"MM", Modified},
		{"AM", Modified},
		{"M ", Staged},
		{"A ", Staged},
		{"D ", Staged},
		{"R ", Staged},
		{"UU", Modified},
		{"AU", Modified},
		{"AA", Modified},
		{"DD", Modified},
		{"  ", Clean},
	}

	for _, tt := range tests {
		if got := classify(tt.xy[0], tt.xy[1]); got != tt.want {
			t.Errorf("classify(%q) = %v, want %v", tt.xy, got, tt.want)
		}
	}
}

func TestFirstComponent(t *testing.T) {
	tests := []struct {
		path, prefix, want string
	}{
		{"a.txt", "", "a.txt"},
		{"src/main.go", "", "src"},
		{"dir/", "", "dir"},
		{"sub/x/y.go", "sub/", "x"},
		{"other/y.go", "sub/", ""},
		{"sub/", "sub/", ""},
	}

	for _, tt := range tests {
		if got := firstComponent(tt.path, tt.prefix); got != tt.want {
			t.Errorf("firstComponent(%q, %q) = %q, want %q", tt.path, tt.prefix, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	names := []string{".git", "clean.txt", "src", "docs", "empty", "notes.log", "vendor", "new.txt"}
	changes := []change{
		{X: '?', Y: '?', Path: "src/b.go"},
		{X: ' ', Y: 'M', Path: "src/a.go"},
		{X: '!', Y: '!', Path: "notes.log"},
		{X: '!', Y: '!', Path: "vendor/cache/"},
		{X: 'A', Y: ' ', Path: "new.txt"},
		{X: '?', Y: '?', Path: "elsewhere.txt"}, // not listed
	}
	tracked := []string{"clean.txt", "src/a.go", "docs/readme.md", "vendor/mod.txt"}

	got := fold(names, "", changes, tracked)
	want := Report{
		".git":      Ignored,
		"clean.txt": Clean,
		"src":       Modified,
		"docs":      Clean,
		"empty":     Untracked,
		"notes.log": Ignored,
		"vendor":    Clean,
		"new.txt":   Staged,
	}
	if !maps.Equal(got, want) {
		t.Errorf("fold() = %v, want %v", got, want)
	}
}

func TestFold_InsideUntrackedDirectory(t *testing.T) {
	changes := []change{{X: '?', Y: '?', Path: "scratch/"}}

	got := fold([]string{"a", "b"}, "scratch/deep/", changes, nil)
	for name, st := range got {
		if st != Untracked {
			t.Errorf("%s = %v, want untracked", name, st)
		}
	}
}

func TestFold_InsideIgnoredDirectory(t *testing.T) {
	changes := []change{{X: '!', Y: '!', Path: "build/"}}

	got := fold([]string{"out.o"}, "build/", changes, nil)
	if got["out.o"] != Ignored {
		t.Errorf("out.o = %v, want ignored", got["out.o"])
	}
}

func TestStatusOrder(t *testing.T) {
	order := []Status{NotRepo, Ignored, Clean, Untracked, Staged, Modified}
	for i := 1; i < len(order); i++ {
		if Worse(order[i-1], order[i]) != order[i] {
			t.Errorf("%v should be worse than %v", order[i], order[i-1])
		}
	}
}

func TestResult(t *testing.T) {
	if Disabled.IsEnabled() || Disabled.String() != "disabled" {
		t.Errorf("Disabled = %v", Disabled)
	}
	var zero Result
	if zero != Disabled {
		t.Error("zero Result should be Disabled")
	}

	r := Enabled(Untracked)
	st, ok := r.Status()
	if !ok || st != Untracked || r.String() != "untracked" {
		t.Errorf("Enabled(Untracked) = %v (%v, %v)", r, st, ok)
	}

	text, err := Enabled(NotRepo).MarshalText()
	if err != nil || string(text) != "not_repo" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}
}

func TestParseRevParse(t *testing.T) {
	tests := []struct {
		out        string
		wantInside bool
		wantPrefix string
	}{
		{"true\n\n", true, ""},
		{"true\nsrc/pkg/\n", true, "src/pkg/"},
		{"false\n\n", false, ""},
		{"false\n", false, ""},
	}

	for _, tt := range tests {
		inside, prefix := parseRevParse([]byte(tt.out))
		if inside != tt.wantInside || prefix != tt.wantPrefix {
			t.Errorf("parseRevParse(%q) = %v, %q; want %v, %q", tt.out, inside, prefix, tt.wantInside, tt.wantPrefix)
		}
	}
}
