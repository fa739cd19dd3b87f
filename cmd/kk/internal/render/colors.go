package render

import (
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/albertocavalcante/kk/cmd/kk/internal/vcs"
	"github.com/albertocavalcante/kk/pkg/config"
)

// UseColor resolves a colour mode for out. Auto colours only terminals.
func UseColor(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if f, ok := out.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// fileClass indexes the LSCOLORS slots, in LSCOLORS order.
type fileClass int

const (
	classDir fileClass = iota
	classSymlink
	classSocket
	classPipe
	classExec
	classBlock
	classChar
	classSetuid
	classSetgid
	classDirStickyOtherWritable
	classDirOtherWritable
	numClasses
	classNone fileClass = -1
)

// ColorSpec is one LSCOLORS slot. Colours are ANSI indexes "0".."7"; empty
// means the terminal default.
type ColorSpec struct {
	FG, BG string
	Bold   bool
}

// Palette holds the file-type colours.
type Palette struct {
	specs [numClasses]ColorSpec
	set   bool
}

// defaultLSColors is the BSD ls default.
const defaultLSColors = "exfxcxdxbxegedabagacad"

// DefaultPalette returns the BSD ls default colours.
func DefaultPalette() Palette {
	p, _ := ParseLSColors(defaultLSColors)
	return p
}

// ParseLSColors parses a BSD LSCOLORS value: eleven foreground/background
// letter pairs, a-h for the eight ANSI colours, A-H for bold, x for default.
// It reports false and returns the defaults when s is too short.
func ParseLSColors(s string) (Palette, bool) {
	if len(s) < 2*int(numClasses) {
		p, _ := ParseLSColors(defaultLSColors)
		return p, false
	}
	var p Palette
	for i := range numClasses {
		fg, bold := bsdColor(s[2*i])
		bg, _ := bsdColor(s[2*i+1])
		p.specs[i] = ColorSpec{FG: fg, BG: bg, Bold: bold}
	}
	p.set = true
	return p, true
}

// PaletteFromEnv reads LSCOLORS, falling back to the defaults.
func PaletteFromEnv() Palette {
	p, _ := ParseLSColors(os.Getenv("LSCOLORS"))
	return p
}

func bsdColor(c byte) (string, bool) {
	switch {
	case c >= 'a' && c <= 'h':
		return strconv.Itoa(int(c - 'a')), false
	case c >= 'A' && c <= 'H':
		return strconv.Itoa(int(c - 'A')), true
	default:
		return "", false
	}
}

// classOf picks the LSCOLORS slot for a mode, or classNone for plain files.
func classOf(m fs.FileMode) fileClass {
	switch {
	case m.IsDir():
		if m.Perm()&0o002 != 0 {
			if m&fs.ModeSticky != 0 {
				return classDirStickyOtherWritable
			}
			return classDirOtherWritable
		}
		return classDir
	case m&fs.ModeSymlink != 0:
		return classSymlink
	case m&fs.ModeSocket != 0:
		return classSocket
	case m&fs.ModeNamedPipe != 0:
		return classPipe
	case m&fs.ModeSetuid != 0:
		return classSetuid
	case m&fs.ModeSetgid != 0:
		return classSetgid
	case m.IsRegular() && m.Perm()&0o111 != 0:
		return classExec
	case m&fs.ModeCharDevice != 0:
		return classChar
	case m&fs.ModeDevice != 0:
		return classBlock
	default:
		return classNone
	}
}

// Size gradient: upper bound in bytes and 256-colour index.
var sizeColors = []struct {
	limit int64
	color int
}{
	{1024, 46},
	{2048, 82},
	{3072, 118},
	{5120, 154},
	{10240, 190},
	{20480, 226},
	{40960, 220},
	{102400, 214},
	{262144, 208},
	{524288, 202},
}

const largeFileColor = 196

// Age gradient: exclusive upper bound and 256-colour index. Negative ages
// (future timestamps) hit the first row.
var ageColors = []struct {
	limit time.Duration
	color int
}{
	{0, 196},
	{time.Minute, 255},
	{time.Hour, 252},
	{24 * time.Hour, 250},
	{7 * 24 * time.Hour, 244},
	{28 * 24 * time.Hour, 244},
	{sixMonths, 242},
	{364 * 24 * time.Hour, 240},
	{728 * 24 * time.Hour, 238},
}

const ancientColor = 236

func sizeColor(size int64) int {
	for _, c := range sizeColors {
		if size <= c.limit {
			return c.color
		}
	}
	return largeFileColor
}

func ageColor(age time.Duration) int {
	for _, c := range ageColors {
		if age < c.limit {
			return c.color
		}
	}
	return ancientColor
}

// Markers and their 256-colour indexes.
var markers = map[vcs.Status]struct {
	glyph string
	color int
}{
	vcs.Clean:     {"|", 82},
	vcs.Modified:  {"+", 196},
	vcs.Staged:    {"*", 82},
	vcs.Untracked: {"?", 196},
	vcs.Ignored:   {"!", 238},
}

const ownerColor = 241

// styler applies colours to already padded cells. With colour off every
// method returns its input unchanged.
type styler struct {
	enabled bool
	r       *lipgloss.Renderer
	classes [numClasses]lipgloss.Style
}

func newStyler(w io.Writer, opts Options) *styler {
	s := &styler{enabled: opts.Color}
	if !s.enabled {
		return s
	}

	s.r = lipgloss.NewRenderer(w)
	s.r.SetColorProfile(termenv.ANSI256)

	palette := opts.Palette
	if !palette.set {
		palette = DefaultPalette()
	}
	for i, spec := range palette.specs {
		st := s.base()
		if spec.FG != "" {
			st = st.Foreground(lipgloss.Color(spec.FG))
		}
		if spec.BG != "" {
			st = st.Background(lipgloss.Color(spec.BG))
		}
		if spec.Bold {
			st = st.Bold(true)
		}
		s.classes[i] = st
	}
	return s
}

func (s *styler) base() lipgloss.Style {
	return s.r.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

func (s *styler) color(text string, color int) string {
	if !s.enabled {
		return text
	}
	return s.base().Foreground(lipgloss.Color(strconv.Itoa(color))).Render(text)
}

func (s *styler) owner(text string) string {
	return s.color(text, ownerColor)
}

func (s *styler) size(text string, size int64) string {
	return s.color(text, sizeColor(size))
}

func (s *styler) date(text string, age time.Duration) string {
	return s.color(text, ageColor(age))
}

func (s *styler) marker(st vcs.Status) string {
	m, ok := markers[st]
	if !ok {
		return " "
	}
	return s.color(m.glyph, m.color)
}

func (s *styler) name(text string, mode fs.FileMode) string {
	if !s.enabled {
		return text
	}
	class := classOf(mode)
	if class == classNone {
		return text
	}
	return s.classes[class].Render(text)
}
