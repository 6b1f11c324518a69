package connect

import "github.com/chazu/strata/pkg/geom"

// Connection is a candidate straight segment joining a location on one
// contour to a location on another.
type Connection struct {
	From geom.BoundaryPoint
	To   geom.BoundaryPoint
}

// Length2 returns the squared length of the connection segment.
func (c Connection) Length2() int64 {
	return c.To.Pos.Sub(c.From.Pos).Size2()
}

// Bridge is a pair of roughly parallel connections that, together with arcs
// of the two source contours, closes into a single loop. A is canonically
// the left connection and B the right one relative to A's direction vector;
// the splicer's walk logic depends on this ordering.
type Bridge struct {
	A Connection
	B Connection
}
