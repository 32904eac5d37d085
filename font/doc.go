// Package font loads and indexes the typefaces used to draw text runs.
//
// A [Ref] is a resolved typeface handle: it carries the parsed outline
// tables for glyph extraction and a shaping face for glyph placement, both
// built from the same underlying bytes. Refs come from three places:
//
//   - [Parse], for font files embedded in a document package
//   - [Library.Resolve], for system-installed fonts looked up by family name
//   - [Fallback], a built-in bitmap face that is always available
//
// A [Library] scans font directories once and indexes every parseable
// .ttf/.otf file by its family name. Resolution never fails: an unknown
// family degrades through a CJK-aware fallback list, then the first indexed
// face, then the built-in bitmap face.
package font
