package model

import (
	"image"
	"math"
)

// DPI is the fixed device pixel density used for millimetre to pixel
// conversion. Rendering at a different effective density is done by
// scaling the canvas, not by changing the conversion.
const DPI = 96

const mmPerInch = 25.4

// MMToPx converts a length in document millimetres to device pixels.
// The conversion is a single fixed scale factor: exact at zero and
// strictly increasing.
func MMToPx(mm float64) float64 {
	return mm * DPI / mmPerInch
}

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Box is an axis-aligned rectangle in document millimetres, y-down,
// origin at the page's top-left corner. Values are immutable once
// parsed; conversion produces a new PixelBox.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ToPixel converts the box to device pixels, scaling all four fields
// independently. PixelBox has no ToPixel method, so a box cannot be
// converted twice.
func (b Box) ToPixel() PixelBox {
	return PixelBox{
		X:      MMToPx(b.X),
		Y:      MMToPx(b.Y),
		Width:  MMToPx(b.Width),
		Height: MMToPx(b.Height),
	}
}

// IsZero returns true if all four fields are zero, the "unset" value
// for optional boxes such as a page area override.
func (b Box) IsZero() bool {
	return b == Box{}
}

// PixelBox is an axis-aligned rectangle in device pixels.
type PixelBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the right edge X coordinate
func (b PixelBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate
func (b PixelBox) Bottom() float64 {
	return b.Y + b.Height
}

// Rect returns the box as an image.Rectangle, rounding each edge to
// the nearest pixel.
func (b PixelBox) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(b.X)),
		int(math.Round(b.Y)),
		int(math.Round(b.Right())),
		int(math.Round(b.Bottom())),
	)
}

// Color is an RGB triple copied directly from parsed input, one byte
// per channel, no color-space transform. The zero value is black.
type Color [3]uint8

// RGBA implements image/color.Color so a Color can be handed straight
// to a rasterizer or compared with decoded pixels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(c[0]) * 0x101, uint32(c[1]) * 0x101, uint32(c[2]) * 0x101, 0xffff
}

// Matrix is a 2D affine transform with coefficients [a b c d e f] in
// the convention
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// Backends re-derive their own native mapping of the six coefficients;
// the convention here is the document's, not any backend's.
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply composes two transforms: the receiver applies first, then
// other. other.Transform(m.Transform(p)) == m.Multiply(other).Transform(p).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}

// ScaleFactor returns the mean scale the matrix applies to lengths, the
// square root of the absolute determinant. Stroke widths multiply by it
// when drawn under a transform.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}
