package model

// Document is the parsed representation of one document inside an OFD
// package: its metadata, page geometry, ordered pages and the two
// resource tables rendering draws from. Immutable once parsed;
// read-only during a render pass. A nil resource table means the
// package carried no descriptor for it.
type Document struct {
	Info        DocInfo
	PhysicalBox Box // default page area from CommonData
	Pages       []*Page
	PublicRes   *PublicRes
	DocumentRes *DocumentRes
}

// DocInfo carries document-level metadata from the package descriptor.
// Dates are kept as the descriptor's literal strings; formats vary
// between producers.
type DocInfo struct {
	DocID          string
	Title          string
	Author         string
	Subject        string
	Abstract       string
	Creator        string
	CreatorVersion string
	CreationDate   string
	ModDate        string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the document
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// PageArea returns the physical box for the given page, falling back
// to the document's CommonData box when the page has no override.
func (d *Document) PageArea(page *Page) Box {
	if page != nil && !page.Area.IsZero() {
		return page.Area
	}
	return d.PhysicalBox
}

// PublicRes is the document's public resource table. BaseLoc prefixes
// resource file paths relative to the document root's directory.
type PublicRes struct {
	BaseLoc string
	Fonts   []Font
}

// Font is one entry of the public resource font table.
type Font struct {
	ID         int
	FontName   string
	FamilyName string
	FontFile   string // embedded font file, relative to BaseLoc; empty if none
	Bold       bool
	Italic     bool
}

// Family returns the name text should be matched by: the family name
// when the descriptor carries one, the font name otherwise.
func (f Font) Family() string {
	if f.FamilyName != "" {
		return f.FamilyName
	}
	return f.FontName
}

// DocumentRes is the document resource table holding multimedia
// entries.
type DocumentRes struct {
	BaseLoc     string
	MultiMedias []MultiMedia
}

// MultiMedia is one entry of the multimedia table: a media file
// referenced by id from image objects.
type MultiMedia struct {
	ID        int
	Type      string // "Image" for raster media
	Format    string
	MediaFile string // relative to BaseLoc
}

// Page is a single document page: an optional area override and the
// ordered content layers. Almost every real document has exactly one
// layer; when several are present they render in order, later layers
// over earlier ones.
type Page struct {
	Number int // 1-indexed, assigned by Document.AddPage
	Area   Box // zero value means: use the document's PhysicalBox
	Layers []Layer
}

// Layer is one ordered sequence of content events.
type Layer struct {
	ID     int
	Events []Event
}

// NewPage creates a new page with a single empty content layer
func NewPage() *Page {
	return &Page{
		Layers: []Layer{{}},
	}
}

// AddEvent appends an event to the page's last content layer
func (p *Page) AddEvent(ev Event) {
	if len(p.Layers) == 0 {
		p.Layers = []Layer{{}}
	}
	last := len(p.Layers) - 1
	p.Layers[last].Events = append(p.Layers[last].Events, ev)
}

// Events returns the page's content events across all layers, in
// paint order.
func (p *Page) Events() []Event {
	if len(p.Layers) == 1 {
		return p.Layers[0].Events
	}
	var events []Event
	for _, layer := range p.Layers {
		events = append(events, layer.Events...)
	}
	return events
}
