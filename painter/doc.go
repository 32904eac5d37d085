// Package painter is the retained-mode painter backend. A Painter keeps
// a Pen, a Brush, a Font and a world transform, and draws rectangles,
// polylines, strings and images onto an image.RGBA through them. Canvas
// adapts a Painter to the render.Canvas capability by collecting traced
// paths into polylines and routing the walker's colors onto the pen and
// brush.
//
// Strings draw upright at the transformed baseline through a font.Drawer,
// so rotated text keeps its glyph masks axis-aligned. Callers that need
// fully transformed text use the vector backend instead.
package painter
