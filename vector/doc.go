// Package vector is the immediate-mode raster backend. It implements
// the drawing capability over a rasterx filler/dasher pair and an
// image.RGBA surface.
//
// Paths are transformed on the CPU as they are built, so the
// rasterizer only ever sees device coordinates. Text renders from
// glyph outlines passed through the full current transform, which
// keeps rotated and sheared text correct; the bitmap fallback face
// degrades to upright glyphs at the transformed baseline.
package vector
