package font

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tsawler/ofd/internal/logging"
)

// defaultFallbacks is tried in order when an exact family lookup misses.
// CJK families first: document text in this format is predominantly
// Chinese and a Latin-only substitute would drop every CJK glyph.
var defaultFallbacks = []string{
	"Microsoft YaHei", "SimSun", "SimHei", "NSimSun", "KaiTi", "FangSong",
	"Noto Sans CJK SC", "Noto Sans SC", "Noto Serif CJK SC",
	"WenQuanYi Micro Hei", "WenQuanYi Zen Hei", "AR PL UMing CN",
	"Yu Gothic", "Meiryo", "MS Gothic", "Malgun Gothic",
	"Arial", "Helvetica", "DejaVu Sans", "Liberation Sans",
}

// Library indexes installed fonts by family name. Build one with
// NewLibrary; the package-wide instance from Default scans the system
// directories once and is shared by every resolver that does not bring
// its own.
type Library struct {
	dirs      []string
	fallbacks []string
	byFamily  map[string]*Ref
	families  []string // sorted, original casing
}

// Option configures a Library before it scans.
type Option func(*Library)

// WithDirs replaces the scanned directories. The default is the
// platform's system font locations plus the user's font directories.
func WithDirs(dirs ...string) Option {
	return func(l *Library) {
		l.dirs = dirs
	}
}

// WithFallbacks replaces the family fallback list tried after an exact
// lookup misses.
func WithFallbacks(families ...string) Option {
	return func(l *Library) {
		l.fallbacks = families
	}
}

// NewLibrary scans the configured directories and indexes every
// parseable .ttf and .otf file by family name. Unreadable directories
// and unparseable files are skipped; an empty index is valid and
// resolves everything to the bitmap face.
func NewLibrary(opts ...Option) *Library {
	lib := &Library{
		dirs:      systemFontDirs(),
		fallbacks: defaultFallbacks,
		byFamily:  make(map[string]*Ref),
	}
	for _, opt := range opts {
		opt(lib)
	}

	lib.scan()
	sort.Strings(lib.families)

	logging.Logger().Debug("font: library indexed",
		"dirs", len(lib.dirs), "families", len(lib.families))
	return lib
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the shared system-font library, scanning on first use.
func Default() *Library {
	defaultOnce.Do(func() {
		defaultLib = NewLibrary()
	})
	return defaultLib
}

func (l *Library) scan() {
	for _, dir := range l.dirs {
		filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(p)) {
			case ".ttf", ".otf":
			default:
				return nil
			}

			data, err := os.ReadFile(p)
			if err != nil {
				return nil
			}
			ref, err := Parse(data)
			if err != nil || ref.family == "" {
				logging.Logger().Debug("font: skipping unparseable file", "path", p)
				return nil
			}

			key := strings.ToLower(ref.family)
			if _, ok := l.byFamily[key]; !ok {
				l.byFamily[key] = ref
				l.families = append(l.families, ref.family)
			}
			return nil
		})
	}
}

// Families returns the indexed family names in sorted order.
func (l *Library) Families() []string {
	out := make([]string, len(l.families))
	copy(out, l.families)
	return out
}

// Lookup finds a face by exact family name, case-insensitively.
func (l *Library) Lookup(family string) (*Ref, bool) {
	ref, ok := l.byFamily[strings.ToLower(family)]
	return ref, ok
}

// Resolve returns a usable face for the family. It never fails: a miss
// walks the fallback list, then the first indexed family, then the
// built-in bitmap face.
func (l *Library) Resolve(family string) *Ref {
	if ref, ok := l.Lookup(family); ok {
		return ref
	}

	for _, fb := range l.fallbacks {
		if ref, ok := l.Lookup(fb); ok {
			logging.Logger().Debug("font: family substituted",
				"requested", family, "using", ref.family)
			return ref
		}
	}

	if len(l.families) > 0 {
		ref := l.byFamily[strings.ToLower(l.families[0])]
		logging.Logger().Debug("font: family substituted",
			"requested", family, "using", ref.family)
		return ref
	}

	logging.Logger().Debug("font: no fonts indexed, using bitmap face",
		"requested", family)
	return Fallback()
}

func systemFontDirs() []string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	case "windows":
		return []string{`C:\Windows\Fonts`}
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".fonts"),
				filepath.Join(home, ".local", "share", "fonts"))
		}
		return dirs
	}
}
