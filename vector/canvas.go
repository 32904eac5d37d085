package vector

import (
	"errors"
	"image"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/ofd/font"
	"github.com/tsawler/ofd/internal/logging"
	"github.com/tsawler/ofd/model"
	"github.com/tsawler/ofd/render"
)

// state is one entry of the graphics state stack.
type state struct {
	ctm    model.Matrix
	stroke model.Color
	fill   model.Color
	width  float64
	font   *font.Ref
	fontPx float64
}

type subpath struct {
	pts    []model.Point // device coordinates
	closed bool
}

// Canvas rasterizes drawing calls into an RGBA surface.
type Canvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher

	cur   state
	stack []state
	path  []subpath

	buf sfnt.Buffer
}

var _ render.Canvas = (*Canvas)(nil)

// New creates a canvas owning a transparent surface of the given pixel
// size.
func New(width, height int) *Canvas {
	return NewForImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewForImage creates a canvas drawing into a caller-supplied surface.
func NewForImage(img *image.RGBA) *Canvas {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, b)
	return &Canvas{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(w, h, scanner),
		dasher:  rasterx.NewDasher(w, h, scanner),
		cur: state{
			ctm:   model.Identity(),
			width: 1,
		},
	}
}

// Image returns the surface being drawn into.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Save pushes the current graphics state.
func (c *Canvas) Save() error {
	c.stack = append(c.stack, c.cur)
	return nil
}

// Restore pops the graphics state and discards any open path.
func (c *Canvas) Restore() error {
	if len(c.stack) == 0 {
		return errors.New("vector: restore without matching save")
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.path = nil
	return nil
}

// Translate prepends a translation to the current transform.
func (c *Canvas) Translate(dx, dy float64) {
	c.cur.ctm = model.Translate(dx, dy).Multiply(c.cur.ctm)
}

// Concat prepends m to the current transform: drawn coordinates pass
// through m first, then the prior transform.
func (c *Canvas) Concat(m model.Matrix) {
	c.cur.ctm = m.Multiply(c.cur.ctm)
}

func (c *Canvas) SetStrokeColor(col model.Color) { c.cur.stroke = col }
func (c *Canvas) SetFillColor(col model.Color)   { c.cur.fill = col }

// SetLineWidth sets the stroke width in pre-transform pixels. The
// effective device width follows the current transform's scale factor.
func (c *Canvas) SetLineWidth(px float64) {
	c.cur.width = px
}

func (c *Canvas) SetFont(f *font.Ref, sizePx float64) {
	c.cur.font = f
	c.cur.fontPx = sizePx
}

// MoveTo starts a new subpath. The point is transformed immediately.
func (c *Canvas) MoveTo(x, y float64) {
	p := c.cur.ctm.Transform(model.Point{X: x, Y: y})
	c.path = append(c.path, subpath{pts: []model.Point{p}})
}

// LineTo extends the current subpath. Without a preceding MoveTo it
// starts one.
func (c *Canvas) LineTo(x, y float64) {
	p := c.cur.ctm.Transform(model.Point{X: x, Y: y})
	if len(c.path) == 0 {
		c.path = append(c.path, subpath{pts: []model.Point{p}})
		return
	}
	last := &c.path[len(c.path)-1]
	last.pts = append(last.pts, p)
}

// ClosePath marks the current subpath closed.
func (c *Canvas) ClosePath() {
	if len(c.path) > 0 {
		c.path[len(c.path)-1].closed = true
	}
}

// Stroke strokes the accumulated path with the current stroke color and
// line width, then clears the path.
func (c *Canvas) Stroke() error {
	if len(c.path) == 0 {
		return nil
	}

	width := c.cur.width * c.cur.ctm.ScaleFactor()

	d := c.dasher
	d.SetStroke(
		fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap,
		rasterx.Miter, nil, 0,
	)

	for _, sp := range c.path {
		if len(sp.pts) == 0 {
			continue
		}
		d.Start(fixp(sp.pts[0]))
		for _, p := range sp.pts[1:] {
			d.Line(fixp(p))
		}
		d.Stop(sp.closed)
	}

	c.scanner.SetColor(c.cur.stroke)
	d.Draw()
	d.Clear()
	c.path = nil
	return nil
}

// DrawText fills the string's glyph outlines with the current fill
// color, baseline origin at (x, y). Outlines pass point by point
// through the current transform. The bitmap fallback face draws
// upright at the transformed baseline instead.
func (c *Canvas) DrawText(x, y float64, s string) error {
	if s == "" {
		return nil
	}

	ref := c.cur.font
	if ref == nil {
		ref = font.Fallback()
	}
	if ref.IsBitmap() {
		return c.drawBitmapText(ref, x, y, s)
	}

	glyphs := ref.Shape(s, c.cur.fontPx)
	ppem := fixed.Int26_6(c.cur.fontPx * 64)
	outline := ref.Outline()

	pen := 0.0
	for _, g := range glyphs {
		segs, err := outline.LoadGlyph(&c.buf, g.GID, ppem, nil)
		if err != nil {
			logging.Logger().Debug("vector: glyph outline unavailable, skipping",
				"gid", int(g.GID), "error", err)
			pen += g.XAdvance
			continue
		}

		// Glyph segments are y-down with the origin on the baseline.
		// HarfBuzz offsets are y-up, hence the sign flip.
		ox := x + pen + g.XOffset
		oy := y - g.YOffset
		c.fillGlyph(segs, ox, oy)

		pen += g.XAdvance
	}
	return nil
}

func (c *Canvas) fillGlyph(segs []sfnt.Segment, ox, oy float64) {
	f := c.filler

	started := false
	dev := func(p fixed.Point26_6) fixed.Point26_6 {
		pt := c.cur.ctm.Transform(model.Point{
			X: ox + float64(p.X)/64,
			Y: oy + float64(p.Y)/64,
		})
		return fixp(pt)
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				f.Stop(true)
			}
			f.Start(dev(seg.Args[0]))
			started = true
		case sfnt.SegmentOpLineTo:
			f.Line(dev(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			f.QuadBezier(dev(seg.Args[0]), dev(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			f.CubeBezier(dev(seg.Args[0]), dev(seg.Args[1]), dev(seg.Args[2]))
		}
	}
	if started {
		f.Stop(true)
	}

	c.scanner.SetColor(c.cur.fill)
	f.Draw()
	f.Clear()
}

func (c *Canvas) drawBitmapText(ref *font.Ref, x, y float64, s string) error {
	face, err := ref.Face(c.cur.fontPx)
	if err != nil {
		return err
	}

	origin := c.cur.ctm.Transform(model.Point{X: x, Y: y})
	d := &xfont.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.cur.fill),
		Face: face,
		Dot: fixed.P(
			int(math.Round(origin.X)),
			int(math.Round(origin.Y)),
		),
	}
	d.DrawString(s)
	return nil
}

// DrawImage paints img scaled onto dst with independent x and y
// factors, composed with the current transform.
func (c *Canvas) DrawImage(img image.Image, dst model.PixelBox) error {
	b := img.Bounds()
	if b.Empty() || dst.Width <= 0 || dst.Height <= 0 {
		return nil
	}

	// Source pixel -> destination box -> device.
	m := model.Translate(-float64(b.Min.X), -float64(b.Min.Y)).
		Multiply(model.Scale(dst.Width/float64(b.Dx()), dst.Height/float64(b.Dy()))).
		Multiply(model.Translate(dst.X, dst.Y)).
		Multiply(c.cur.ctm)

	xdraw.BiLinear.Transform(c.img, toAff3(m), img, b, xdraw.Over, nil)
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
