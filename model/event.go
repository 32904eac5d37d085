package model

// EventType identifies the concrete type of a content event
type EventType int

const (
	EventUnknown EventType = iota
	EventPath
	EventText
	EventImage
	EventBlock
)

func (et EventType) String() string {
	switch et {
	case EventPath:
		return "PathObject"
	case EventText:
		return "TextObject"
	case EventImage:
		return "ImageObject"
	case EventBlock:
		return "PageBlock"
	default:
		return "Unknown"
	}
}

// Event is one drawable entry of a page's content tree. The set of
// implementations is closed: PathObject, TextObject, ImageObject and
// PageBlock, fixed by the document format. Renderers dispatch with a
// type switch; the unexported marker keeps the set closed so the
// switch stays exhaustive.
type Event interface {
	Type() EventType
	isEvent()
}

// PathObject is a stroked graphic. Arbitrary path geometry is
// approximated by the boundary rectangle outline; interior segment
// data is not modeled.
type PathObject struct {
	Boundary  Box
	Stroke    Color
	LineWidth float64 // millimetres
}

func (*PathObject) Type() EventType { return EventPath }
func (*PathObject) isEvent()        {}

// TextCode is a positioned text run: content plus its origin offset
// within the owning object's boundary box, in millimetres.
type TextCode struct {
	X       float64
	Y       float64
	Content string
}

// TextObject is a text run placed inside a boundary box.
type TextObject struct {
	Boundary Box
	Fill     *Color // nil means the default fill (black)
	FontID   int
	Size     float64 // font size in millimetres
	Code     TextCode
	CTM      *Matrix // nil means no local transform
}

func (*TextObject) Type() EventType { return EventText }
func (*TextObject) isEvent()        {}

// ImageObject places a raster resource, identified by its id in the
// document resource table, inside a boundary box.
type ImageObject struct {
	Boundary   Box
	ResourceID int
}

func (*ImageObject) Type() EventType { return EventImage }
func (*ImageObject) isEvent()        {}

// PageBlock nests an ordered sequence of events. Blocks own their
// children outright; the content tree is a strict tree.
type PageBlock struct {
	Events []Event
}

func (*PageBlock) Type() EventType { return EventBlock }
func (*PageBlock) isEvent()        {}
