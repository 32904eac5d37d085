package font

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/ofd/internal/logging"
)

// Ref is a resolved typeface. The zero value is not useful; obtain a Ref
// from Parse, Library.Resolve, or Fallback.
type Ref struct {
	family  string
	outline *sfnt.Font  // nil when only the bitmap fallback is available
	shaped  *gofont.Face // shaping face over the same bytes, may be nil
}

// Glyph is one positioned glyph of a shaped run. Distances are in pixels
// at the size the run was shaped at.
type Glyph struct {
	GID      sfnt.GlyphIndex
	Cluster  int // rune index in the source text
	XAdvance float64
	YAdvance float64
	XOffset  float64
	YOffset  float64
}

// Parse builds a Ref from raw font file bytes (TrueType or CFF-flavored
// OpenType). The outline tables must parse; the shaping face is
// best-effort and placement degrades to bare advances without it.
func Parse(data []byte) (*Ref, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}

	ref := &Ref{outline: sf, family: familyName(sf)}

	if face, err := gofont.ParseTTF(bytes.NewReader(data)); err == nil {
		ref.shaped = face
	} else {
		logging.Logger().Debug("font: shaping face unavailable, using bare advances",
			"family", ref.family, "error", err)
	}

	return ref, nil
}

// Fallback returns the built-in bitmap face. It draws every string with a
// fixed 7x13 glyph grid and is the face of last resort.
func Fallback() *Ref {
	return &Ref{family: "builtin"}
}

// Family returns the face's family name as recorded in its name table.
func (r *Ref) Family() string { return r.family }

// IsBitmap reports whether the Ref is the built-in bitmap face, which has
// no outlines to extract.
func (r *Ref) IsBitmap() bool { return r.outline == nil }

// Outline returns the parsed outline tables, or nil for the bitmap face.
func (r *Ref) Outline() *sfnt.Font { return r.outline }

// Face returns a drawable face at the given pixel size.
func (r *Ref) Face(sizePx float64) (font.Face, error) {
	if r.outline == nil {
		return basicfont.Face7x13, nil
	}
	face, err := opentype.NewFace(r.outline, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72, // size is in pixels already, 1pt == 1px at 72dpi
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: face %q at %.1fpx: %w", r.family, sizePx, err)
	}
	return face, nil
}

// Shape converts a text run into positioned glyphs at the given pixel
// size. Runs shape through HarfBuzz when the shaping face is available and
// fall back to per-rune advances otherwise. The bitmap face returns nil;
// callers draw it through a Face instead.
func (r *Ref) Shape(text string, sizePx float64) []Glyph {
	if text == "" {
		return nil
	}
	switch {
	case r.shaped != nil:
		return r.shapeRun(text, sizePx)
	case r.outline != nil:
		return r.bareAdvances(text, sizePx)
	default:
		return nil
	}
}

func (r *Ref) shapeRun(text string, sizePx float64) []Glyph {
	runes := []rune(text)
	script := detectScript(runes)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      r.shaped,
		Size:      fixed.Int26_6(sizePx * 64),
		Script:    script,
		Language:  language.DefaultLanguage(),
	}

	shaper := &shaping.HarfbuzzShaper{}
	output := shaper.Shape(input)

	glyphs := make([]Glyph, 0, len(output.Glyphs))
	for _, g := range output.Glyphs {
		glyphs = append(glyphs, Glyph{
			GID:      sfnt.GlyphIndex(g.GlyphID),
			Cluster:  int(g.ClusterIndex),
			XAdvance: float64(g.XAdvance) / 64.0,
			YAdvance: float64(g.YAdvance) / 64.0,
			XOffset:  float64(g.XOffset) / 64.0,
			YOffset:  float64(g.YOffset) / 64.0,
		})
	}
	return glyphs
}

// bareAdvances positions glyphs by their advance widths alone. No kerning,
// no ligatures, no complex-script support.
func (r *Ref) bareAdvances(text string, sizePx float64) []Glyph {
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(sizePx * 64)

	glyphs := make([]Glyph, 0, len(text))
	for i, ch := range []rune(text) {
		gid, err := r.outline.GlyphIndex(&buf, ch)
		if err != nil {
			continue
		}
		adv, err := r.outline.GlyphAdvance(&buf, gid, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		glyphs = append(glyphs, Glyph{
			GID:      gid,
			Cluster:  i,
			XAdvance: float64(adv) / 64.0,
		})
	}
	return glyphs
}

func familyName(sf *sfnt.Font) string {
	var buf sfnt.Buffer
	name, err := sf.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// detectScript returns the majority script of the run. Mixed-script runs
// shape with the dominant script, which is sufficient for single-run text.
func detectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	maxCount := 0
	best := language.Latin

	for _, r := range runes {
		script := scriptFromRune(r)
		if script == language.Unknown {
			continue
		}
		counts[script]++
		if counts[script] > maxCount {
			maxCount = counts[script]
			best = script
		}
	}
	return best
}

func scriptFromRune(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Han, r):
		return language.Han
	case unicode.Is(unicode.Hiragana, r):
		return language.Hiragana
	case unicode.Is(unicode.Katakana, r):
		return language.Katakana
	case unicode.Is(unicode.Hangul, r):
		return language.Hangul
	case unicode.Is(unicode.Latin, r):
		return language.Latin
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	}
	return language.Unknown
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}
