package connect

import (
	"math"

	"github.com/chazu/strata/pkg/geom"
)

// connectionSlack widens the distance thresholds by a few micrometers so
// that connections a hair longer than the nominal line width still count.
const connectionSlack = 10

// Connector merges contours that pass within maxDist of each other,
// bridging them with segment pairs spaced lineWidth apart. A Connector is
// not safe for concurrent use; give each goroutine its own.
type Connector struct {
	lineWidth int64
	maxDist   int64
	bridges   []Bridge
}

// New returns a Connector. lineWidth is the expected spacing between the
// two segments of each bridge (and the "close enough, stop searching"
// threshold); maxDist is the longest allowed first connection before a
// contour is deemed unbridgeable.
func New(lineWidth, maxDist int64) *Connector {
	return &Connector{lineWidth: lineWidth, maxDist: maxDist}
}

// Bridges returns every bridge accepted so far, for introspection and
// visualization. The boundary points' positions stay meaningful after
// Connect returns; their polygon references describe worklist storage that
// is rewritten as connecting proceeds.
func (c *Connector) Bridges() []Bridge {
	return c.bridges
}

// Connect merges the input contours where possible and returns the reduced
// collection. The input is not modified. Every contour gets exactly one
// bridging attempt: either it absorbs into a neighbour within maxDist, or
// it is emitted unchanged. The result never has more contours than the
// input.
func (c *Connector) Connect(polys geom.Polygons) geom.Polygons {
	result := make(geom.Polygons, 0, len(polys))
	work := polys.Clone()

	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]

		bridge, otherIdx, ok := c.bestBridge(&current, work)
		if !ok {
			result = append(result, current)
			continue
		}
		c.bridges = append(c.bridges, bridge)
		// Replace the matched contour's worklist slot with the merged
		// contour; current has been absorbed into it.
		work[otherIdx] = spliceAlongBridge(bridge)
	}
	return result
}

// bestBridge searches others for a contour that can be bridged to from, and
// returns the bridge plus the index of the matched contour. It reports
// false when from is isolated (nothing within maxDist) or too small to
// carry both bridge connections.
func (c *Connector) bestBridge(from *geom.Polygon, others []geom.Polygon) (Bridge, int, bool) {
	first, otherIdx, ok := c.firstConnection(from, others)
	if !ok || first.Length2() > c.maxDist*c.maxDist {
		return Bridge{}, 0, false
	}

	second, ok := c.secondConnection(first, c.lineWidth)
	if !ok {
		// The full-width bridge does not fit forward of the closest
		// approach. Retry at half width and, when that lands, re-anchor the
		// full-width search on the recovered connection so the bridge
		// straddles the original one.
		half, okHalf := c.secondConnection(first, c.lineWidth/2)
		if !okHalf {
			return Bridge{}, 0, false
		}
		full, okFull := c.secondConnection(half, c.lineWidth)
		if !okFull {
			return Bridge{}, 0, false
		}
		first, second = half, full
	}

	bridge := Bridge{A: first, B: second}
	// Canonicalize: A must be the left connection as seen along A's
	// direction vector.
	aVec := bridge.A.To.Pos.Sub(bridge.A.From.Pos)
	side := aVec.Turn90CCW()
	if side.Dot(bridge.B.From.Pos.Sub(bridge.A.From.Pos)) > 0 {
		bridge.A, bridge.B = bridge.B, bridge.A
	}
	return bridge, otherIdx, true
}

// firstConnection finds the closest approach between from and any contour
// in others. Candidates are scanned in order and the scan stops early at
// the first connection shorter than lineWidth plus slack: a bridge that
// tight cannot be improved enough to matter. Reports false when others is
// empty or only contains empty contours.
func (c *Connector) firstConnection(from *geom.Polygon, others []geom.Polygon) (Connection, int, bool) {
	if len(*from) == 0 {
		return Connection{}, 0, false
	}
	goodEnough := (c.lineWidth + connectionSlack) * (c.lineWidth + connectionSlack)

	var best Connection
	bestIdx := -1
	bestDist2 := int64(math.MaxInt64)
	for i := range others {
		if len(others[i]) == 0 {
			continue
		}
		onFrom, onTo := geom.SmallestConnection(from, &others[i])
		d2 := onTo.Pos.Sub(onFrom.Pos).Size2()
		if d2 < bestDist2 {
			best = Connection{From: onFrom, To: onTo}
			bestIdx = i
			bestDist2 = d2
			if d2 < goodEnough {
				return best, bestIdx, true
			}
		}
	}
	if bestIdx < 0 {
		return Connection{}, 0, false
	}
	return best, bestIdx, true
}

// secondConnection looks for a connection parallel to first, offset by
// shift, closing the bridge shape. From each endpoint of first the boundary
// is searched in both walking directions for a point at perpendicular
// offset shift, and the best surviving combination is returned. Reports
// false when either primary (forward) search fails or the best candidate
// exceeds the slack-bounded admissibility limit.
func (c *Connector) secondConnection(first Connection, shift int64) (Connection, bool) {
	fromA, ok := geom.NextParallelIntersection(first.From, first.To.Pos, shift, true)
	if !ok {
		// Then there is not going to be a backward candidate either.
		return Connection{}, false
	}
	fromB, okFromB := geom.NextParallelIntersection(first.From, first.To.Pos, shift, false)

	toA, ok := geom.NextParallelIntersection(first.To, first.From.Pos, shift, true)
	if !ok {
		return Connection{}, false
	}
	toB, okToB := geom.NextParallelIntersection(first.To, first.From.Pos, shift, false)

	side := first.From.Pos.Sub(first.To.Pos).Turn90CCW()

	fromCandidates := []geom.BoundaryPoint{fromA}
	if okFromB {
		fromCandidates = append(fromCandidates, fromB)
	}
	toCandidates := []geom.BoundaryPoint{toA}
	if okToB {
		toCandidates = append(toCandidates, toB)
	}

	var best Connection
	bestScore := int64(math.MaxInt64)
	for _, from := range fromCandidates {
		for _, to := range toCandidates {
			fromProj := from.Pos.Sub(first.To.Pos).Dot(side)
			toProj := to.Pos.Sub(first.To.Pos).Dot(side)
			// Both candidate endpoints must lie on the same side of the
			// first connection, otherwise the pair straddles it instead of
			// running parallel to it.
			if fromProj == 0 || toProj == 0 || (fromProj > 0) != (toProj > 0) {
				continue
			}
			// Note: the last term is a linear distance, not squared.
			score := from.Pos.Sub(to.Pos).Size2() +
				from.Pos.Sub(first.From.Pos).Size2() +
				to.Pos.Sub(first.To.Pos).Size()
			if score < bestScore {
				best = Connection{From: from, To: to}
				bestScore = score
			}
		}
	}

	limit := c.maxDist*c.maxDist + 2*(shift+connectionSlack)*(shift+connectionSlack)
	if bestScore > limit {
		return Connection{}, false
	}
	return best, true
}
