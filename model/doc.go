// Package model defines the typed in-memory representation of an OFD
// document: metadata, pages, content events and the geometric
// primitives they are described with.
//
// All values are produced by the container package's descriptor parse
// and are immutable afterwards; a render pass only reads them.
//
// # Content tree
//
// Page content is an ordered tree of [Event] values. The event set is
// closed: [PathObject], [TextObject], [ImageObject] and [PageBlock].
// A [PageBlock] owns its child events outright, so the tree is a
// strict tree with no sharing and no cycles. Events render strictly
// in sequence order; later events paint over earlier ones.
//
// # Units
//
// Documents describe geometry in millimetres. [Box] carries
// millimetre values and converts exactly once to a [PixelBox] via
// [Box.ToPixel]; the two are distinct types so a double conversion
// does not compile. [MMToPx] is the underlying scalar conversion at a
// fixed [DPI].
//
// # Resources
//
// Fonts and multimedia files live in the [PublicRes] and
// [DocumentRes] tables, referenced from events by integer id. Ids may
// legitimately be absent from their table; resolution of an absent id
// degrades (default font, nothing drawn) and is not an error.
package model
