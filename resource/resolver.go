package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path"

	// Raster codecs sniffed at decode time.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/ofd/font"
	"github.com/tsawler/ofd/format"
	"github.com/tsawler/ofd/internal/logging"
	"github.com/tsawler/ofd/model"
)

var (
	// ErrResourceNotFound means the id has no entry in its resource table.
	ErrResourceNotFound = errors.New("resource: id not found in resource table")

	// ErrEntryMissing means the resource's file could not be read from
	// the archive.
	ErrEntryMissing = errors.New("resource: archive entry missing")

	// ErrDecode means the resource bytes are not a decodable raster image.
	ErrDecode = errors.New("resource: undecodable image data")
)

// EntryReader is the slice of the container session a resolver needs.
type EntryReader interface {
	ReadEntry(name string) ([]byte, error)
	ResolveLoc(loc string) string
}

// Resolver materializes fonts and images referenced by id from the
// document's resource tables.
type Resolver struct {
	reader EntryReader
	doc    *model.Document
	lib    *font.Library

	// Cache maps are nil unless WithCache was given.
	images map[int]image.Image
	fonts  map[int]*font.Ref
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache memoizes decoded images and parsed fonts for the resolver's
// lifetime. Off by default: the baseline contract re-resolves on every
// call.
func WithCache() Option {
	return func(r *Resolver) {
		r.images = make(map[int]image.Image)
		r.fonts = make(map[int]*font.Ref)
	}
}

// WithFontLibrary substitutes the font library used for non-embedded
// fonts. The default is the shared system library.
func WithFontLibrary(lib *font.Library) Option {
	return func(r *Resolver) {
		r.lib = lib
	}
}

// NewResolver binds a resolver to one document and its archive.
func NewResolver(reader EntryReader, doc *model.Document, opts ...Option) *Resolver {
	r := &Resolver{
		reader: reader,
		doc:    doc,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveFont scans the font table for the id. A miss is an ordinary
// outcome, not an error: callers degrade to a default face.
func (r *Resolver) ResolveFont(id int) (model.Font, bool) {
	if r.doc.PublicRes == nil {
		return model.Font{}, false
	}
	for _, f := range r.doc.PublicRes.Fonts {
		if f.ID == id {
			return f, true
		}
	}
	return model.Font{}, false
}

// ResolveImage returns the raw bytes of the multimedia resource. The
// entry name is the BaseLoc-prefixed media file path resolved against
// the document root, read in a single attempt.
func (r *Resolver) ResolveImage(id int) ([]byte, error) {
	media, ok := r.lookupMedia(id)
	if !ok {
		return nil, fmt.Errorf("%w: multimedia %d", ErrResourceNotFound, id)
	}

	entryPath := r.reader.ResolveLoc(path.Join(r.doc.DocumentRes.BaseLoc, media.MediaFile))
	data, err := r.reader.ReadEntry(entryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: multimedia %d: %v", ErrEntryMissing, id, err)
	}
	return data, nil
}

// ResolveImageSurface returns the decoded image for the multimedia
// resource. The codec is sniffed from the magic bytes; PNG, JPEG, GIF,
// BMP, TIFF and WebP decode.
func (r *Resolver) ResolveImageSurface(id int) (image.Image, error) {
	if r.images != nil {
		if img, ok := r.images[id]; ok {
			return img, nil
		}
	}

	data, err := r.ResolveImage(id)
	if err != nil {
		return nil, err
	}

	f := format.DetectFromMagic(data)
	if !f.IsRaster() {
		return nil, fmt.Errorf("%w: multimedia %d: unrecognized magic bytes", ErrDecode, id)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: multimedia %d as %s: %v", ErrDecode, id, f, err)
	}

	logging.Logger().Debug("resource: image decoded",
		"id", id, "format", f.String(), "bounds", img.Bounds())

	if r.images != nil {
		r.images[id] = img
	}
	return img, nil
}

// ResolveFontFace returns a usable typeface for the font id. It never
// fails: an embedded font file is read and parsed when the table entry
// names one, and every miss (unknown id, missing entry, unparseable
// bytes) degrades through the font library to the bitmap face.
func (r *Resolver) ResolveFontFace(id int) *font.Ref {
	if r.fonts != nil {
		if ref, ok := r.fonts[id]; ok {
			return ref
		}
	}

	fnt, ok := r.ResolveFont(id)

	var ref *font.Ref
	if ok && fnt.FontFile != "" {
		ref = r.parseEmbedded(id, fnt)
	}
	if ref == nil {
		family := ""
		if ok {
			family = fnt.Family()
		}
		ref = r.library().Resolve(family)
	}

	logging.Logger().Debug("resource: font resolved",
		"id", id, "family", ref.Family(), "bitmap", ref.IsBitmap())

	if r.fonts != nil {
		r.fonts[id] = ref
	}
	return ref
}

func (r *Resolver) parseEmbedded(id int, fnt model.Font) *font.Ref {
	entryPath := r.reader.ResolveLoc(path.Join(r.doc.PublicRes.BaseLoc, fnt.FontFile))

	data, err := r.reader.ReadEntry(entryPath)
	if err != nil {
		logging.Logger().Debug("resource: embedded font entry missing, falling back",
			"id", id, "entry", entryPath, "error", err)
		return nil
	}

	ref, err := font.Parse(data)
	if err != nil {
		logging.Logger().Debug("resource: embedded font unparseable, falling back",
			"id", id, "entry", entryPath, "error", err)
		return nil
	}
	return ref
}

func (r *Resolver) lookupMedia(id int) (model.MultiMedia, bool) {
	if r.doc.DocumentRes == nil {
		return model.MultiMedia{}, false
	}
	for _, m := range r.doc.DocumentRes.MultiMedias {
		if m.ID == id {
			return m, true
		}
	}
	return model.MultiMedia{}, false
}

func (r *Resolver) library() *font.Library {
	if r.lib != nil {
		return r.lib
	}
	return font.Default()
}
