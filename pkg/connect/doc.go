// Package connect merges nearby closed contours on one print layer into
// fewer, longer contours. Two contours that pass within a configurable
// distance of each other are spliced together across a pair of short,
// roughly parallel connecting segments (a bridge), so the print head can
// trace both as a single loop instead of travelling between them. Fewer
// discrete loops means fewer travel moves, seams, and retractions.
//
// The connector runs to completion for one layer's contour set before
// returning, with no locks or I/O. Independent layers may be connected in
// parallel as long as each Connector and its input collection is owned by a
// single goroutine; a Polygons collection must never be shared across
// concurrent Connect calls.
package connect
