package render

import (
	"bytes"
	"io/fs"
	"testing"
	"time"

	"github.com/albertocavalcante/kk/cmd/kk/internal/vcs"
	"github.com/albertocavalcante/kk/pkg/config"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size  int64
		human bool
		si    bool
		want  string
	}{
		{0, false, false, "0"},
		{123456, false, false, "123456"},
		{0, true, false, "0"},
		{1023, true, false, "1023"},
		{1024, true, false, "1K"},
		{1025, true, false, "2K"},
		{4106, true, false, "5K"},
		{1048575, true, false, "1M"},
		{1048576, true, false, "1M"},
		{1048577, true, false, "2M"},
		{5 << 30, true, false, "5G"},
		{999, true, true, "999"},
		{1000, true, true, "1K"},
		{1500, true, true, "2K"},
		{2000000, true, true, "2M"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.size, tt.human, tt.si); got != tt.want {
			t.Errorf("FormatSize(%d, %v, %v) = %q, want %q", tt.size, tt.human, tt.si, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"recent", time.Date(2024, 6, 1, 9, 5, 0, 0, time.UTC), " 1 Jun 09:05"},
		{"future", time.Date(2024, 7, 20, 8, 0, 0, 0, time.UTC), "20 Jul 08:00"},
		{"old", time.Date(2023, 11, 3, 8, 0, 0, 0, time.UTC), " 3 Nov  2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.t, now, time.UTC); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMode(t *testing.T) {
	tests := []struct {
		mode fs.FileMode
		want string
	}{
		{0o644, "-rw-r--r--"},
		{fs.ModeDir | 0o755, "drwxr-xr-x"},
		{fs.ModeSymlink | 0o777, "lrwxrwxrwx"},
		{fs.ModeNamedPipe | 0o600, "prw-------"},
		{fs.ModeSocket | 0o755, "srwxr-xr-x"},
		{fs.ModeDevice | fs.ModeCharDevice | 0o666, "crw-rw-rw-"},
		{fs.ModeDevice | 0o660, "brw-rw----"},
		{fs.ModeSetuid | 0o755, "-rwsr-xr-x"},
		{fs.ModeSetuid | 0o644, "-rwSr--r--"},
		{fs.ModeSetgid | 0o755, "-rwxr-sr-x"},
		{fs.ModeDir | fs.ModeSticky | 0o777, "drwxrwxrwt"},
		{fs.ModeDir | fs.ModeSticky | 0o776, "drwxrwxrwT"},
	}

	for _, tt := range tests {
		if got := FormatMode(tt.mode); got != tt.want {
			t.Errorf("FormatMode(%v) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestMarker(t *testing.T) {
	tests := []struct {
		status vcs.Status
		want   string
	}{
		{vcs.Clean, "|"},
		{vcs.Modified, "+"},
		{vcs.Staged, "*"},
		{vcs.Untracked, "?"},
		{vcs.Ignored, "!"},
		{vcs.NotRepo, " "},
	}

	var s styler
	for _, tt := range tests {
		if got := s.marker(tt.status); got != tt.want {
			t.Errorf("marker(%v) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestParseLSColors(t *testing.T) {
	p, ok := ParseLSColors("Exgxcxdxbxegedabagacad")
	if !ok {
		t.Fatal("ParseLSColors() rejected a valid value")
	}
	if dir := p.specs[classDir]; dir.FG != "4" || dir.BG != "" || !dir.Bold {
		t.Errorf("dir = %+v, want bold blue on default", dir)
	}
	if link := p.specs[classSymlink]; link.FG != "6" || link.Bold {
		t.Errorf("symlink = %+v, want cyan", link)
	}
	if tw := p.specs[classDirStickyOtherWritable]; tw.FG != "0" || tw.BG != "2" {
		t.Errorf("sticky dir = %+v, want black on green", tw)
	}

	if _, ok := ParseLSColors("short"); ok {
		t.Error("ParseLSColors() accepted a short value")
	}
	if DefaultPalette().specs[classExec].FG != "1" {
		t.Error("default executables should be red")
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		mode fs.FileMode
		want fileClass
	}{
		{0o644, classNone},
		{0o755, classExec},
		{fs.ModeDir | 0o755, classDir},
		{fs.ModeDir | 0o777, classDirOtherWritable},
		{fs.ModeDir | fs.ModeSticky | 0o777, classDirStickyOtherWritable},
		{fs.ModeSymlink | 0o777, classSymlink},
		{fs.ModeSocket, classSocket},
		{fs.ModeNamedPipe, classPipe},
		{fs.ModeSetuid | 0o755, classSetuid},
		{fs.ModeSetgid | 0o755, classSetgid},
		{fs.ModeDevice | fs.ModeCharDevice, classChar},
		{fs.ModeDevice, classBlock},
	}

	for _, tt := range tests {
		if got := classOf(tt.mode); got != tt.want {
			t.Errorf("classOf(%v) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestGradients(t *testing.T) {
	if sizeColor(0) != 46 || sizeColor(1024) != 46 || sizeColor(1025) != 82 || sizeColor(1<<30) != largeFileColor {
		t.Error("size gradient thresholds")
	}
	if ageColor(-time.Second) != 196 || ageColor(30*time.Second) != 255 || ageColor(3*365*24*time.Hour) != ancientColor {
		t.Error("age gradient thresholds")
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	if !UseColor(config.ColorAlways, &buf) {
		t.Error("always should colour")
	}
	if UseColor(config.ColorNever, &buf) {
		t.Error("never should not colour")
	}
	if UseColor(config.ColorAuto, &buf) {
		t.Error("auto should not colour a buffer")
	}
}
