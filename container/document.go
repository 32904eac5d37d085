package container

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/ofd/model"
)

// ErrInvalidDocument indicates a document descriptor that does not
// parse.
var ErrInvalidDocument = errors.New("ofd: invalid document descriptor")

// OFD default line width in millimetres, used when a PathObject
// carries no LineWidth attribute.
const defaultLineWidth = 0.353

// documentXML represents Document.xml.
type documentXML struct {
	XMLName    xml.Name      `xml:"Document"`
	CommonData commonDataXML `xml:"CommonData"`
	Pages      pagesXML      `xml:"Pages"`
}

type commonDataXML struct {
	PageArea    pageAreaXML `xml:"PageArea"`
	PublicRes   string      `xml:"PublicRes"`
	DocumentRes string      `xml:"DocumentRes"`
}

type pageAreaXML struct {
	PhysicalBox string `xml:"PhysicalBox"`
}

type pagesXML struct {
	Page []pageRefXML `xml:"Page"`
}

type pageRefXML struct {
	ID      string `xml:"ID,attr"`
	BaseLoc string `xml:"BaseLoc,attr"`
}

// resXML represents a resource descriptor, PublicRes.xml or
// DocumentRes.xml; both share the Res element.
type resXML struct {
	XMLName     xml.Name        `xml:"Res"`
	BaseLoc     string          `xml:"BaseLoc,attr"`
	Fonts       []fontXML       `xml:"Fonts>Font"`
	MultiMedias []multiMediaXML `xml:"MultiMedias>MultiMedia"`
}

type fontXML struct {
	ID         string `xml:"ID,attr"`
	FontName   string `xml:"FontName,attr"`
	FamilyName string `xml:"FamilyName,attr"`
	Bold       string `xml:"Bold,attr"`
	Italic     string `xml:"Italic,attr"`
	FontFile   string `xml:"FontFile"`
}

type multiMediaXML struct {
	ID        string `xml:"ID,attr"`
	Type      string `xml:"Type,attr"`
	Format    string `xml:"Format,attr"`
	MediaFile string `xml:"MediaFile"`
}

// pageXML represents a page content descriptor (Content.xml).
type pageXML struct {
	XMLName xml.Name    `xml:"Page"`
	Area    pageAreaXML `xml:"Area"`
	Content contentXML  `xml:"Content"`
}

type contentXML struct {
	Layers []layerXML `xml:"Layer"`
}

// layerXML decodes a content layer. Object elements must keep their
// document order across the four object kinds, which struct-tag
// decoding cannot express, so the layer walks the token stream
// itself.
type layerXML struct {
	ID     int
	Events []model.Event
}

func (l *layerXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "ID" {
			l.ID, _ = strconv.Atoi(attr.Value)
		}
	}
	events, err := decodeEvents(d)
	if err != nil {
		return err
	}
	l.Events = events
	return nil
}

// decodeEvents consumes children of the current element until its end
// tag, converting object elements to events in document order. Every
// child start element is fully consumed before the next token is
// read, so the first end element seen at this level closes the
// parent.
func decodeEvents(d *xml.Decoder) ([]model.Event, error) {
	var events []model.Event
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ev, err := decodeObject(d, t)
			if err != nil {
				return nil, err
			}
			if ev != nil {
				events = append(events, ev)
			}
		case xml.EndElement:
			return events, nil
		}
	}
}

// decodeObject converts one object element into an event. Unknown
// elements are skipped, not errors; the format grows faster than
// renderers do.
func decodeObject(d *xml.Decoder, start xml.StartElement) (model.Event, error) {
	switch start.Name.Local {
	case "PathObject":
		var raw pathObjectXML
		if err := d.DecodeElement(&raw, &start); err != nil {
			return nil, err
		}
		return raw.toEvent()
	case "TextObject":
		var raw textObjectXML
		if err := d.DecodeElement(&raw, &start); err != nil {
			return nil, err
		}
		return raw.toEvent()
	case "ImageObject":
		var raw imageObjectXML
		if err := d.DecodeElement(&raw, &start); err != nil {
			return nil, err
		}
		return raw.toEvent()
	case "PageBlock":
		events, err := decodeEvents(d)
		if err != nil {
			return nil, err
		}
		return &model.PageBlock{Events: events}, nil
	default:
		if err := d.Skip(); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

type colorXML struct {
	Value string `xml:"Value,attr"`
}

type pathObjectXML struct {
	Boundary    string   `xml:"Boundary,attr"`
	LineWidth   string   `xml:"LineWidth,attr"`
	StrokeColor colorXML `xml:"StrokeColor"`
}

func (p pathObjectXML) toEvent() (model.Event, error) {
	boundary, err := parseBox(p.Boundary)
	if err != nil {
		return nil, err
	}

	ev := &model.PathObject{Boundary: boundary, LineWidth: defaultLineWidth}
	if p.LineWidth != "" {
		w, err := strconv.ParseFloat(p.LineWidth, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line width %q", ErrInvalidDocument, p.LineWidth)
		}
		ev.LineWidth = w
	}
	if p.StrokeColor.Value != "" {
		c, err := parseColor(p.StrokeColor.Value)
		if err != nil {
			return nil, err
		}
		ev.Stroke = c
	}
	return ev, nil
}

type textObjectXML struct {
	Boundary  string        `xml:"Boundary,attr"`
	Font      string        `xml:"Font,attr"`
	Size      string        `xml:"Size,attr"`
	CTM       string        `xml:"CTM,attr"`
	FillColor *colorXML     `xml:"FillColor"`
	TextCodes []textCodeXML `xml:"TextCode"`
}

type textCodeXML struct {
	X       string `xml:"X,attr"`
	Y       string `xml:"Y,attr"`
	Content string `xml:",chardata"`
}

func (t textObjectXML) toEvent() (model.Event, error) {
	boundary, err := parseBox(t.Boundary)
	if err != nil {
		return nil, err
	}

	ev := &model.TextObject{Boundary: boundary}
	ev.FontID, _ = strconv.Atoi(t.Font)
	if t.Size != "" {
		size, err := strconv.ParseFloat(t.Size, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: font size %q", ErrInvalidDocument, t.Size)
		}
		ev.Size = size
	}
	if t.CTM != "" {
		m, err := parseMatrix(t.CTM)
		if err != nil {
			return nil, err
		}
		ev.CTM = &m
	}
	if t.FillColor != nil && t.FillColor.Value != "" {
		c, err := parseColor(t.FillColor.Value)
		if err != nil {
			return nil, err
		}
		ev.Fill = &c
	}

	// The model carries a single text run per object; the first
	// TextCode wins when a producer emits several.
	if len(t.TextCodes) > 0 {
		code := t.TextCodes[0]
		ev.Code.Content = code.Content
		if code.X != "" {
			x, err := strconv.ParseFloat(code.X, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: text offset %q", ErrInvalidDocument, code.X)
			}
			ev.Code.X = x
		}
		if code.Y != "" {
			y, err := strconv.ParseFloat(code.Y, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: text offset %q", ErrInvalidDocument, code.Y)
			}
			ev.Code.Y = y
		}
	}

	return ev, nil
}

type imageObjectXML struct {
	Boundary   string `xml:"Boundary,attr"`
	ResourceID string `xml:"ResourceID,attr"`
}

func (i imageObjectXML) toEvent() (model.Event, error) {
	boundary, err := parseBox(i.Boundary)
	if err != nil {
		return nil, err
	}

	ev := &model.ImageObject{Boundary: boundary}
	ev.ResourceID, _ = strconv.Atoi(i.ResourceID)
	return ev, nil
}

// Document parses the package's document descriptor tree into the
// model. Resource descriptors referenced by CommonData but absent
// from the archive leave their table nil, the same degradation an
// absent id gets at render time; an unreadable page is an error.
func (s *Session) Document() (*model.Document, error) {
	data, err := s.ReadEntry(s.docRoot)
	if err != nil {
		return nil, fmt.Errorf("ofd: reading document descriptor: %w", err)
	}

	var descriptor documentXML
	if err := decodeXML(data, &descriptor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	doc := model.NewDocument()
	doc.Info = s.info

	if pb := descriptor.CommonData.PageArea.PhysicalBox; pb != "" {
		box, err := parseBox(pb)
		if err != nil {
			return nil, err
		}
		doc.PhysicalBox = box
	}

	if loc := descriptor.CommonData.PublicRes; loc != "" {
		res, err := s.readRes(loc)
		if err != nil {
			return nil, err
		}
		if res != nil {
			doc.PublicRes = &model.PublicRes{BaseLoc: res.BaseLoc, Fonts: res.modelFonts()}
		}
	}

	if loc := descriptor.CommonData.DocumentRes; loc != "" {
		res, err := s.readRes(loc)
		if err != nil {
			return nil, err
		}
		if res != nil {
			doc.DocumentRes = &model.DocumentRes{BaseLoc: res.BaseLoc, MultiMedias: res.modelMedia()}
		}
	}

	for _, ref := range descriptor.Pages.Page {
		page, err := s.readPage(ref)
		if err != nil {
			return nil, err
		}
		doc.AddPage(page)
	}

	return doc, nil
}

// readRes reads and parses a resource descriptor. A missing entry is
// tolerated and returns nil; a present but unparseable one is an
// error.
func (s *Session) readRes(loc string) (*resXML, error) {
	data, err := s.ReadEntry(s.ResolveLoc(loc))
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var res resXML
	if err := decodeXML(data, &res); err != nil {
		return nil, fmt.Errorf("%w: resource %s: %v", ErrInvalidDocument, loc, err)
	}
	return &res, nil
}

func (r resXML) modelFonts() []model.Font {
	fonts := make([]model.Font, 0, len(r.Fonts))
	for _, f := range r.Fonts {
		id, _ := strconv.Atoi(f.ID)
		fonts = append(fonts, model.Font{
			ID:         id,
			FontName:   f.FontName,
			FamilyName: f.FamilyName,
			FontFile:   f.FontFile,
			Bold:       f.Bold == "true",
			Italic:     f.Italic == "true",
		})
	}
	return fonts
}

func (r resXML) modelMedia() []model.MultiMedia {
	media := make([]model.MultiMedia, 0, len(r.MultiMedias))
	for _, m := range r.MultiMedias {
		id, _ := strconv.Atoi(m.ID)
		media = append(media, model.MultiMedia{
			ID:        id,
			Type:      m.Type,
			Format:    m.Format,
			MediaFile: m.MediaFile,
		})
	}
	return media
}

func (s *Session) readPage(ref pageRefXML) (*model.Page, error) {
	data, err := s.ReadEntry(s.ResolveLoc(ref.BaseLoc))
	if err != nil {
		return nil, fmt.Errorf("ofd: reading page %s: %w", ref.ID, err)
	}

	var raw pageXML
	if err := decodeXML(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: page %s: %v", ErrInvalidDocument, ref.ID, err)
	}

	page := &model.Page{}
	if raw.Area.PhysicalBox != "" {
		box, err := parseBox(raw.Area.PhysicalBox)
		if err != nil {
			return nil, err
		}
		page.Area = box
	}
	for _, layer := range raw.Content.Layers {
		page.Layers = append(page.Layers, model.Layer{ID: layer.ID, Events: layer.Events})
	}
	return page, nil
}

// parseBox parses an "x y w h" attribute in millimetres.
func parseBox(s string) (model.Box, error) {
	vals, err := parseFloats(s, 4)
	if err != nil {
		return model.Box{}, fmt.Errorf("%w: boundary %q", ErrInvalidDocument, s)
	}
	return model.Box{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// parseMatrix parses an "a b c d e f" CTM attribute.
func parseMatrix(s string) (model.Matrix, error) {
	vals, err := parseFloats(s, 6)
	if err != nil {
		return model.Matrix{}, fmt.Errorf("%w: ctm %q", ErrInvalidDocument, s)
	}
	return model.Matrix{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}, nil
}

// parseColor parses an "r g b" attribute. Channels are clamped to one
// byte; some producers write them as decimals.
func parseColor(s string) (model.Color, error) {
	vals, err := parseFloats(s, 3)
	if err != nil {
		return model.Color{}, fmt.Errorf("%w: color %q", ErrInvalidDocument, s)
	}
	var c model.Color
	for i, v := range vals {
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		c[i] = uint8(v)
	}
	return c, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	vals := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
