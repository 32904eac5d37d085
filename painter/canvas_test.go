package painter

import (
	"image"
	"testing"

	"github.com/tsawler/ofd/model"
	"github.com/tsawler/ofd/render"
	"github.com/tsawler/ofd/vector"
)

func newTestCanvas(w, h int) *Canvas {
	return NewCanvas(newTestPainter(w, h))
}

// inkBounds returns the bounding box of every painted pixel, or the zero
// rectangle for a clean surface.
func inkBounds(img *image.RGBA) image.Rectangle {
	b := img.Bounds()
	found := false
	var r image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !hasInk(img, x, y) {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !found {
				r = px
				found = true
			} else {
				r = r.Union(px)
			}
		}
	}
	return r
}

// ============================================================================
// Adapter behavior
// ============================================================================

func TestCanvasStrokeUsesPen(t *testing.T) {
	c := newTestCanvas(60, 40)
	c.SetStrokeColor(model.Color{255, 0, 0})
	c.SetLineWidth(2)
	c.MoveTo(10, 20)
	c.LineTo(40, 20)
	if err := c.Stroke(); err != nil {
		t.Fatalf("stroke: %v", err)
	}

	img := c.Painter().Image()
	r, _, b := channels(img, 25, 20)
	if r == 0 || r <= b {
		t.Errorf("stroke not red: r=%#x b=%#x", r, b)
	}
}

func TestCanvasFillColorPaintsText(t *testing.T) {
	c := newTestCanvas(64, 48)
	c.SetFillColor(model.Color{0, 0, 255})
	c.SetFont(regularFont(t), 16)
	if err := c.DrawText(10, 30, "H"); err != nil {
		t.Fatalf("draw text: %v", err)
	}

	img := c.Painter().Image()
	found := false
	for y := 16; y < 31 && !found; y++ {
		for x := 9; x < 25 && !found; x++ {
			r, _, b, a := img.At(x, y).RGBA()
			if a > 0x8000 {
				found = true
				if b <= r {
					t.Errorf("glyph not blue at (%d,%d): r=%#x b=%#x", x, y, r, b)
				}
			}
		}
	}
	if !found {
		t.Error("no solid glyph pixel found")
	}
}

func TestCanvasTransforms(t *testing.T) {
	c := newTestCanvas(60, 40)
	c.Translate(10, 0)
	c.Concat(model.Scale(2, 1))
	c.SetLineWidth(2)
	c.MoveTo(5, 10)
	c.LineTo(5, 30)
	if err := c.Stroke(); err != nil {
		t.Fatalf("stroke: %v", err)
	}

	img := c.Painter().Image()
	if !hasInk(img, 20, 20) {
		t.Error("no ink at composed position")
	}
	if hasInk(img, 5, 20) {
		t.Error("ink at untransformed position")
	}
}

func TestCanvasClosePath(t *testing.T) {
	c := newTestCanvas(60, 60)
	c.SetLineWidth(2)
	c.MoveTo(10, 10)
	c.LineTo(40, 10)
	c.LineTo(10, 40)
	c.ClosePath()
	if err := c.Stroke(); err != nil {
		t.Fatalf("stroke: %v", err)
	}

	if !hasInk(c.Painter().Image(), 10, 25) {
		t.Error("closed path missing its closing edge")
	}
}

func TestCanvasRestoreDiscardsPath(t *testing.T) {
	c := newTestCanvas(40, 40)
	if err := c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	c.SetLineWidth(2)
	c.MoveTo(10, 10)
	c.LineTo(30, 10)
	if err := c.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := c.Stroke(); err != nil {
		t.Fatalf("stroke: %v", err)
	}

	if n := inkCount(c.Painter().Image(), c.Painter().Image().Bounds()); n != 0 {
		t.Errorf("discarded path painted %d pixels", n)
	}
}

func TestCanvasRestoreUnderflow(t *testing.T) {
	c := newTestCanvas(10, 10)
	if err := c.Restore(); err == nil {
		t.Fatal("expected error from Restore without Save")
	}
}

// ============================================================================
// Backend parity
// ============================================================================

// Both backends must put stroke ink in exactly the same place for the
// same drawing sequence.
func TestBackendParityStrokeBounds(t *testing.T) {
	trace := func(c render.Canvas) {
		c.SetStrokeColor(model.Color{255, 0, 0})
		c.SetLineWidth(2)
		c.MoveTo(10, 10)
		c.LineTo(40, 10)
		c.LineTo(40, 30)
		c.LineTo(10, 30)
		c.ClosePath()
		if err := c.Stroke(); err != nil {
			t.Fatalf("stroke: %v", err)
		}
	}

	v := vector.New(60, 50)
	trace(v)

	pc := newTestCanvas(60, 50)
	trace(pc)

	vb := inkBounds(v.Image())
	pb := inkBounds(pc.Painter().Image())
	if vb != pb {
		t.Errorf("stroke bounds differ: vector %v, painter %v", vb, pb)
	}
	if vb.Empty() {
		t.Fatal("no ink from either backend")
	}
}

// Text output differs pixel for pixel between outline filling and mask
// blitting, but the baseline must land in the same place.
func TestBackendParityTextBaseline(t *testing.T) {
	draw := func(c render.Canvas) {
		c.SetFont(regularFont(t), 16)
		if err := c.DrawText(10, 30, "H"); err != nil {
			t.Fatalf("draw text: %v", err)
		}
	}

	v := vector.New(64, 48)
	draw(v)

	pc := newTestCanvas(64, 48)
	draw(pc)

	vb := inkBounds(v.Image())
	pb := inkBounds(pc.Painter().Image())
	if vb.Empty() || pb.Empty() {
		t.Fatal("no ink from one of the backends")
	}

	if d := vb.Max.Y - pb.Max.Y; d < -1 || d > 1 {
		t.Errorf("baselines differ: vector bottom %d, painter bottom %d", vb.Max.Y, pb.Max.Y)
	}
	if d := vb.Min.X - pb.Min.X; d < -2 || d > 2 {
		t.Errorf("glyph start differs: vector left %d, painter left %d", vb.Min.X, pb.Min.X)
	}
}
