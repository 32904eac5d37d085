// Package render walks a page's content tree and issues drawing calls
// against the [Canvas] capability.
//
// The walk is written once: every backend implements Canvas and receives
// identical call sequences. Events render strictly in document order
// (painter's algorithm, later objects overdraw earlier ones) and the walk
// fails fast: the first failing object aborts the page, leaving earlier
// siblings drawn.
//
// Graphics state discipline is a hard invariant. Every object renders
// inside a Save/Restore pair that is balanced on all exit paths,
// including error returns, and Restore failures are never swallowed.
package render
