package font

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// fontDir writes goregular into a temp directory to stand in for a
// system font directory.
func fontDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "goregular.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNewLibrary(t *testing.T) {
	lib := NewLibrary(WithDirs(fontDir(t)))

	families := lib.Families()
	if len(families) != 1 {
		t.Fatalf("Families() = %v, want exactly one", families)
	}
	if families[0] == "" {
		t.Fatal("indexed family name is empty")
	}
}

func TestLibraryLookup(t *testing.T) {
	lib := NewLibrary(WithDirs(fontDir(t)))
	family := lib.Families()[0]

	ref, ok := lib.Lookup(family)
	if !ok {
		t.Fatalf("Lookup(%q) missed an indexed family", family)
	}
	if ref.Family() != family {
		t.Errorf("Lookup(%q).Family() = %q", family, ref.Family())
	}

	// Case-insensitive.
	if _, ok := lib.Lookup(strings.ToUpper(family)); !ok {
		t.Errorf("Lookup(%q) missed, lookup should ignore case", strings.ToUpper(family))
	}

	if _, ok := lib.Lookup("No Such Family"); ok {
		t.Error("Lookup(No Such Family) = ok, want miss")
	}
}

func TestLibraryResolve(t *testing.T) {
	lib := NewLibrary(WithDirs(fontDir(t)))
	family := lib.Families()[0]

	if got := lib.Resolve(family); got.Family() != family {
		t.Errorf("Resolve(%q) = %q", family, got.Family())
	}

	// Unknown family degrades to the first indexed face, never to nil.
	got := lib.Resolve("SomeUnknownFamily")
	if got == nil {
		t.Fatal("Resolve() = nil")
	}
	if got.IsBitmap() {
		t.Error("Resolve() fell through to bitmap while outline faces are indexed")
	}
}

func TestLibraryResolve_FallbackList(t *testing.T) {
	dir := fontDir(t)
	lib := NewLibrary(WithDirs(dir))
	family := lib.Families()[0]

	custom := NewLibrary(WithDirs(dir), WithFallbacks(family))
	got := custom.Resolve("Missing Family")
	if got.Family() != family {
		t.Errorf("Resolve() via fallback list = %q, want %q", got.Family(), family)
	}
}

func TestLibraryResolve_Empty(t *testing.T) {
	lib := NewLibrary(WithDirs(t.TempDir()))

	if got := lib.Families(); len(got) != 0 {
		t.Fatalf("Families() = %v, want empty", got)
	}

	ref := lib.Resolve("Anything")
	if ref == nil {
		t.Fatal("Resolve() = nil, want bitmap fallback")
	}
	if !ref.IsBitmap() {
		t.Error("Resolve() on empty library should hand out the bitmap face")
	}
}

func TestLibrary_MissingDir(t *testing.T) {
	lib := NewLibrary(WithDirs(filepath.Join(t.TempDir(), "does-not-exist")))
	if got := lib.Families(); len(got) != 0 {
		t.Errorf("Families() = %v, want empty for missing dir", got)
	}
}

func TestLibrary_SkipsNonFontFiles(t *testing.T) {
	dir := fontDir(t)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(WithDirs(dir))
	if got := lib.Families(); len(got) != 1 {
		t.Errorf("Families() = %v, want only the valid font", got)
	}
}
