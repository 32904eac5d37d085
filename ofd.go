// Package ofd renders pages of OFD documents to raster images.
//
// Basic usage:
//
//	doc, err := ofd.Open("invoice.ofd")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//
//	img, err := doc.RenderPage(1, ofd.WithScale(2))
//	if err != nil {
//	    // handle error
//	}
//	png.Encode(out, img)
//
// Pages can also be drawn into a caller-owned backend:
//
//	p := painter.NewPainter(surface)
//	err := doc.RenderPageTo(painter.NewCanvas(p), 1)
//
// For lower-level access the container, resource and render packages are
// also available.
package ofd

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/ofd/container"
	"github.com/tsawler/ofd/internal/logging"
	"github.com/tsawler/ofd/model"
	"github.com/tsawler/ofd/render"
	"github.com/tsawler/ofd/resource"
	"github.com/tsawler/ofd/vector"
)

// Document is an open OFD package ready for rendering. It must be
// closed when no longer needed.
type Document struct {
	session *container.Session
	doc     *model.Document

	// resolver carries the per-document resource cache. Created on
	// first use, discarded with the Document.
	resolver *resource.Resolver
}

// Open opens the OFD package at path and parses its descriptor tree.
func Open(path string) (*Document, error) {
	session, err := container.Open(path)
	if err != nil {
		return nil, err
	}
	return newDocument(session)
}

// OpenReader opens an OFD package from an io.ReaderAt, for callers that
// hold the package in memory or behind their own file abstraction.
func OpenReader(ra io.ReaderAt, size int64) (*Document, error) {
	session, err := container.OpenReader(ra, size)
	if err != nil {
		return nil, err
	}
	return newDocument(session)
}

func newDocument(session *container.Session) (*Document, error) {
	doc, err := session.Document()
	if err != nil {
		session.Close()
		return nil, err
	}
	return &Document{session: session, doc: doc}, nil
}

// Close releases the package handle.
func (d *Document) Close() error {
	return d.session.Close()
}

// Info returns the document metadata from the package entry point.
func (d *Document) Info() model.DocInfo {
	return d.doc.Info
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.PageCount()
}

// Page returns a parsed page by 1-indexed number.
func (d *Document) Page(number int) (*model.Page, error) {
	page := d.doc.GetPage(number)
	if page == nil {
		return nil, fmt.Errorf("ofd: page %d out of range, document has %d pages", number, d.doc.PageCount())
	}
	return page, nil
}

// PageSize returns the page's physical box in millimetres, the
// document default when the page carries no override. The zero box is
// returned for a page number out of range.
func (d *Document) PageSize(number int) model.Box {
	page := d.doc.GetPage(number)
	if page == nil {
		return model.Box{}
	}
	return d.doc.PageArea(page)
}

// RenderPage renders the 1-indexed page into a fresh RGBA surface
// sized from its physical box, paints the background, and draws the
// content through the vector backend.
func (d *Document) RenderPage(number int, opts ...Option) (*image.RGBA, error) {
	page, err := d.Page(number)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	box := d.doc.PageArea(page)
	w := int(math.Ceil(model.MMToPx(box.Width) * o.scale))
	h := int(math.Ceil(model.MMToPx(box.Height) * o.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ofd: page %d has no physical box", number)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, xdraw.Src)

	canvas := vector.NewForImage(img)
	if o.scale != 1 {
		canvas.Concat(model.Scale(o.scale, o.scale))
	}

	res := d.cachedResolver()
	if !o.resourceCache {
		res = resource.NewResolver(d.session, d.doc)
	}

	if err := render.NewRenderer(canvas, res).RenderPage(page); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderPageTo draws the 1-indexed page into a caller-owned canvas.
// The caller controls surface size, background and zoom through the
// canvas itself; content coordinates arrive at the document's fixed
// pixel density.
func (d *Document) RenderPageTo(c render.Canvas, number int) error {
	page, err := d.Page(number)
	if err != nil {
		return err
	}
	return render.NewRenderer(c, d.cachedResolver()).RenderPage(page)
}

func (d *Document) cachedResolver() *resource.Resolver {
	if d.resolver == nil {
		d.resolver = resource.NewResolver(d.session, d.doc, resource.WithCache())
	}
	return d.resolver
}

// SetLogger routes the module's debug logging to l. Passing nil
// restores the silent default.
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	img := ofd.Must(doc.RenderPage(1))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
