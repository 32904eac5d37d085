// Package resource locates fonts and images referenced by id from a
// document's resource tables and materializes them from the package
// archive.
//
// A [Resolver] binds a parsed document to its archive. Image resolution
// is strict: an id absent from the multimedia table wraps
// [ErrResourceNotFound], a table entry whose file is missing from the
// archive wraps [ErrEntryMissing], and undecodable bytes wrap [ErrDecode].
// Font resolution never fails: embedded font files are parsed when
// present, and misses degrade through the system font library down to a
// built-in bitmap face.
//
// Resolution hits the archive on every call. [WithCache] opts into
// memoizing decoded images and parsed fonts for the resolver's lifetime;
// a resolver is bound to one document, so cached entries can never leak
// across documents.
package resource
