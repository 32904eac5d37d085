package render

import (
	"image"

	"github.com/tsawler/ofd/font"
	"github.com/tsawler/ofd/model"
)

// Canvas is the drawing capability the walker renders against. All
// coordinates are device pixels; millimetre conversion happens before
// any call lands here.
//
// Property setters are infallible and take effect on subsequent drawing
// calls. Drawing verbs and state-stack operations return errors;
// implementations must report rather than panic, and a Restore without a
// matching Save is an error, not a crash.
type Canvas interface {
	// Save pushes the current graphics state (transform, colors, line
	// width, font) onto the state stack.
	Save() error

	// Restore pops the state stack, discarding any open path.
	Restore() error

	// Translate prepends a translation to the current transform.
	Translate(dx, dy float64)

	// Concat prepends an affine transform to the current transform:
	// drawn coordinates pass through m first, then the prior transform.
	Concat(m model.Matrix)

	SetStrokeColor(c model.Color)
	SetFillColor(c model.Color)
	SetLineWidth(px float64)
	SetFont(f *font.Ref, sizePx float64)

	// MoveTo starts a new subpath at the given point.
	MoveTo(x, y float64)

	// LineTo extends the current subpath with a straight segment.
	LineTo(x, y float64)

	// ClosePath closes the current subpath back to its start point.
	ClosePath()

	// Stroke strokes the accumulated path with the current stroke color
	// and line width, then clears the path.
	Stroke() error

	// DrawText draws s with its baseline origin at (x, y) in the
	// current transform, using the current font and fill color.
	DrawText(x, y float64, s string) error

	// DrawImage paints img scaled onto dst with independent x and y
	// factors. Aspect ratio is not preserved.
	DrawImage(img image.Image, dst model.PixelBox) error
}
