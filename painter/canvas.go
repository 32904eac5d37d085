package painter

import (
	"image"

	"github.com/tsawler/ofd/font"
	"github.com/tsawler/ofd/model"
	"github.com/tsawler/ofd/render"
)

// Canvas adapts a Painter to the render.Canvas capability. Traced paths
// collect into polylines and stroke with the pen; the walker's fill
// color rides on the brush, which is what DrawString paints with.
type Canvas struct {
	p        *Painter
	subpaths []subpath
}

type subpath struct {
	pts    []model.Point // device coordinates
	closed bool
}

var _ render.Canvas = (*Canvas)(nil)

// NewCanvas wraps p for use as a render target.
func NewCanvas(p *Painter) *Canvas {
	return &Canvas{p: p}
}

// Painter returns the wrapped painter.
func (c *Canvas) Painter() *Painter { return c.p }

func (c *Canvas) Save() error {
	c.p.Save()
	return nil
}

// Restore pops the painter state and discards any open path.
func (c *Canvas) Restore() error {
	c.subpaths = nil
	return c.p.Restore()
}

func (c *Canvas) Translate(dx, dy float64) { c.p.Translate(dx, dy) }
func (c *Canvas) Concat(m model.Matrix)    { c.p.Concat(m) }

func (c *Canvas) SetStrokeColor(col model.Color) {
	pen := c.p.Pen()
	pen.Color = col
	c.p.SetPen(pen)
}

func (c *Canvas) SetLineWidth(px float64) {
	pen := c.p.Pen()
	pen.Width = px
	c.p.SetPen(pen)
}

func (c *Canvas) SetFillColor(col model.Color) {
	c.p.SetBrush(Brush{Color: col})
}

func (c *Canvas) SetFont(f *font.Ref, sizePx float64) {
	c.p.SetFont(Font{Ref: f, Size: sizePx})
}

// MoveTo starts a new polyline. The point is transformed immediately.
func (c *Canvas) MoveTo(x, y float64) {
	p := c.p.WorldTransform().Transform(model.Point{X: x, Y: y})
	c.subpaths = append(c.subpaths, subpath{pts: []model.Point{p}})
}

// LineTo extends the current polyline. Without a preceding MoveTo it
// starts one.
func (c *Canvas) LineTo(x, y float64) {
	p := c.p.WorldTransform().Transform(model.Point{X: x, Y: y})
	if len(c.subpaths) == 0 {
		c.subpaths = append(c.subpaths, subpath{pts: []model.Point{p}})
		return
	}
	last := &c.subpaths[len(c.subpaths)-1]
	last.pts = append(last.pts, p)
}

// ClosePath marks the current polyline closed.
func (c *Canvas) ClosePath() {
	if len(c.subpaths) > 0 {
		c.subpaths[len(c.subpaths)-1].closed = true
	}
}

// Stroke strokes the collected polylines with the pen, then clears them.
func (c *Canvas) Stroke() error {
	for _, sp := range c.subpaths {
		c.p.strokeDevice(sp.pts, sp.closed)
	}
	c.subpaths = nil
	return nil
}

func (c *Canvas) DrawText(x, y float64, s string) error {
	return c.p.DrawString(x, y, s)
}

func (c *Canvas) DrawImage(img image.Image, dst model.PixelBox) error {
	return c.p.DrawImage(img, dst)
}
