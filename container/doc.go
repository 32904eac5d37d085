// Package container reads OFD packages: ZIP archives holding a root
// descriptor (OFD.xml), per-document descriptors and embedded media.
//
// A [Session] owns the open archive and the path to the selected
// document's root descriptor. [Session.ReadEntry] is the byte-level
// access every other layer builds on: one exact-name lookup, one
// read, no retry and no caching. [Session.Document] parses the
// document descriptor tree into the model package's types.
//
// Descriptor XML is decoded charset-aware, and archive entry names
// flagged as non-UTF-8 are additionally matched through their GB18030
// decoding; both show up routinely in packages produced by Chinese
// office software.
package container
