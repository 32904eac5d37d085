package painter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/ofd/font"
	"github.com/tsawler/ofd/model"
)

// Pen controls outline drawing: stroke color and width. Width is a
// world-space quantity; the device width follows the transform's scale
// factor.
type Pen struct {
	Color color.Color
	Width float64
}

// Brush controls filled drawing, including glyphs.
type Brush struct {
	Color color.Color
}

// Font pairs a resolved face with a pixel size.
type Font struct {
	Ref  *font.Ref
	Size float64
}

// state carries everything Save and Restore cycle.
type state struct {
	world model.Matrix
	pen   Pen
	brush Brush
	font  Font
}

// Painter draws primitives onto an RGBA surface through its current pen,
// brush, font and world transform.
type Painter struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher

	cur   state
	stack []state
}

// NewPainter creates a painter over the given surface with a black
// one-pixel pen, a black brush and an identity world transform.
func NewPainter(img *image.RGBA) *Painter {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, b)
	return &Painter{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(w, h, scanner),
		dasher:  rasterx.NewDasher(w, h, scanner),
		cur: state{
			world: model.Identity(),
			pen:   Pen{Color: color.Black, Width: 1},
			brush: Brush{Color: color.Black},
		},
	}
}

// Image returns the surface being drawn into.
func (p *Painter) Image() *image.RGBA { return p.img }

func (p *Painter) Pen() Pen          { return p.cur.pen }
func (p *Painter) SetPen(pen Pen)    { p.cur.pen = pen }
func (p *Painter) Brush() Brush      { return p.cur.brush }
func (p *Painter) SetBrush(b Brush)  { p.cur.brush = b }
func (p *Painter) Font() Font        { return p.cur.font }
func (p *Painter) SetFont(f Font)    { p.cur.font = f }

// WorldTransform returns the current world transform.
func (p *Painter) WorldTransform() model.Matrix { return p.cur.world }

// Translate prepends a translation to the world transform.
func (p *Painter) Translate(dx, dy float64) {
	p.cur.world = model.Translate(dx, dy).Multiply(p.cur.world)
}

// Scale prepends a scale to the world transform.
func (p *Painter) Scale(sx, sy float64) {
	p.cur.world = model.Scale(sx, sy).Multiply(p.cur.world)
}

// Rotate prepends a rotation, angle in radians.
func (p *Painter) Rotate(angle float64) {
	p.cur.world = model.Rotate(angle).Multiply(p.cur.world)
}

// Concat prepends m to the world transform: drawn coordinates pass
// through m first, then the prior transform.
func (p *Painter) Concat(m model.Matrix) {
	p.cur.world = m.Multiply(p.cur.world)
}

// Save pushes the painter state.
func (p *Painter) Save() {
	p.stack = append(p.stack, p.cur)
}

// Restore pops the painter state.
func (p *Painter) Restore() error {
	if len(p.stack) == 0 {
		return errors.New("painter: state stack underflow")
	}
	p.cur = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

// DrawRect strokes the rectangle's outline with the pen.
func (p *Painter) DrawRect(r model.PixelBox) error {
	return p.DrawPolygon(
		model.Point{X: r.X, Y: r.Y},
		model.Point{X: r.Right(), Y: r.Y},
		model.Point{X: r.Right(), Y: r.Bottom()},
		model.Point{X: r.X, Y: r.Bottom()},
	)
}

// FillRect fills the rectangle with the brush. Under a non-axis-aligned
// world transform the filled shape is the transformed parallelogram.
func (p *Painter) FillRect(r model.PixelBox) error {
	corners := []model.Point{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}

	f := p.filler
	f.Start(fixp(p.cur.world.Transform(corners[0])))
	for _, pt := range corners[1:] {
		f.Line(fixp(p.cur.world.Transform(pt)))
	}
	f.Stop(true)

	p.scanner.SetColor(p.cur.brush.Color)
	f.Draw()
	f.Clear()
	return nil
}

// DrawPolyline strokes an open polyline through the world transform.
func (p *Painter) DrawPolyline(pts ...model.Point) error {
	p.strokeDevice(p.transform(pts), false)
	return nil
}

// DrawPolygon strokes a closed polygon through the world transform.
func (p *Painter) DrawPolygon(pts ...model.Point) error {
	p.strokeDevice(p.transform(pts), true)
	return nil
}

func (p *Painter) transform(pts []model.Point) []model.Point {
	out := make([]model.Point, len(pts))
	for i, pt := range pts {
		out[i] = p.cur.world.Transform(pt)
	}
	return out
}

// strokeDevice strokes device-space points with the current pen. Pen
// width is a world-space quantity and follows the transform's scale
// factor.
func (p *Painter) strokeDevice(pts []model.Point, closed bool) {
	if len(pts) < 2 {
		return
	}

	width := p.cur.pen.Width * p.cur.world.ScaleFactor()

	d := p.dasher
	d.SetStroke(
		fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap,
		rasterx.Miter, nil, 0,
	)

	d.Start(fixp(pts[0]))
	for _, pt := range pts[1:] {
		d.Line(fixp(pt))
	}
	d.Stop(closed)

	p.scanner.SetColor(p.cur.pen.Color)
	d.Draw()
	d.Clear()
}

// DrawString draws s with the brush, baseline origin at (x, y) passed
// through the world transform. Glyph masks stay upright regardless of
// the transform.
func (p *Painter) DrawString(x, y float64, s string) error {
	if s == "" {
		return nil
	}

	ref := p.cur.font.Ref
	if ref == nil {
		ref = font.Fallback()
	}
	face, err := ref.Face(p.cur.font.Size)
	if err != nil {
		return fmt.Errorf("painter: %w", err)
	}

	origin := p.cur.world.Transform(model.Point{X: x, Y: y})
	d := &xfont.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(p.cur.brush.Color),
		Face: face,
		Dot: fixed.P(
			int(math.Round(origin.X)),
			int(math.Round(origin.Y)),
		),
	}
	d.DrawString(s)
	return nil
}

// DrawImage paints img scaled onto dst with independent x and y factors,
// composed with the world transform.
func (p *Painter) DrawImage(img image.Image, dst model.PixelBox) error {
	b := img.Bounds()
	if b.Empty() || dst.Width <= 0 || dst.Height <= 0 {
		return nil
	}

	m := model.Translate(-float64(b.Min.X), -float64(b.Min.Y)).
		Multiply(model.Scale(dst.Width/float64(b.Dx()), dst.Height/float64(b.Dy()))).
		Multiply(model.Translate(dst.X, dst.Y)).
		Multiply(p.cur.world)

	xdraw.BiLinear.Transform(p.img, toAff3(m), img, b, xdraw.Over, nil)
	return nil
}

func fixp(p model.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(p.X * 64)),
		Y: fixed.Int26_6(math.Round(p.Y * 64)),
	}
}

// toAff3 rewrites the a..f convention into x/image/draw's row-major
// 3x2 form.
func toAff3(m model.Matrix) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}
