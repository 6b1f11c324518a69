package connect

import "github.com/chazu/strata/pkg/geom"

// spliceAlongBridge builds one closed contour from the two contours joined
// by the bridge. The retained arc of the first contour runs from B's foot to
// A's foot, the retained arc of the second from A's foot to B's foot:
//
//	<<<<<<X......X<<<<<<< second contour
//	      ^      v
//	      ^ A  B v bridge
//	      ^      v
//	>>>>>>X......X>>>>>>> first contour
//
// The two bridge segments become the implied closing edges once the result
// wraps from its last vertex back to its first. The walk directions are
// chosen per arc, so the construction works for outlines and holes alike.
func spliceAlongBridge(bridge Bridge) geom.Polygon {
	var result geom.Polygon
	result = appendArc(result, bridge.B.From, bridge.A.From)
	result = appendArc(result, bridge.A.To, bridge.B.To)
	// A degenerate bridge can close the loop on the exact starting
	// coordinate; drop the wrap-around duplicate.
	if n := len(result); n > 1 && result[0] == result[n-1] {
		result = result[:n-1]
	}
	return result
}

// appendArc appends start, then every vertex strictly between start and end
// when walking away from the arc the bridge cuts out, then end. Both
// boundary points must reference the same polygon: violating that is a
// programming error, not a recoverable condition.
func appendArc(result geom.Polygon, start, end geom.BoundaryPoint) geom.Polygon {
	if start.Poly != end.Poly {
		panic("connect: appendArc requires boundary points on the same polygon")
	}
	poly := *start.Poly
	n := len(poly)
	// Direction of the cut-out arc between the two feet; the retained arc
	// continues past start in that same rotational sense.
	dir := polygonDirection(end, start)

	result = appendVertex(result, start.Pos)
	first := true
	for k := 0; k < n; k++ {
		var idx int
		if dir > 0 {
			idx = (start.Idx + 1 + k) % n
		} else {
			idx = ((start.Idx-k)%n + n) % n
		}
		stop := end.Idx
		if dir > 0 {
			stop = (end.Idx + 1) % n
		}
		// The first iteration must not stop: when both feet sit on the same
		// segment the walk still has to go the long way around.
		if !first && idx == stop {
			break
		}
		first = false
		result = appendVertex(result, poly[idx])
	}
	return appendVertex(result, end.Pos)
}

// appendVertex appends p unless it coincides with the previously appended
// vertex; splices must not introduce zero-length edges.
func appendVertex(poly geom.Polygon, p geom.Point) geom.Polygon {
	if n := len(poly); n > 0 && poly[n-1] == p {
		return poly
	}
	return append(poly, p)
}

// polygonDirection reports the traversal sense that walks from from to to
// between the two boundary points: +1 for increasing vertex order, -1 for
// decreasing. When both points sit on the same segment, the one farther
// from the segment's starting vertex is ahead; otherwise the arc with fewer
// vertices in the increasing direction is taken to be the span between
// them. Both points must reference the same polygon; mismatches are a
// programming error.
func polygonDirection(from, to geom.BoundaryPoint) int {
	if from.Poly != to.Poly {
		panic("connect: polygonDirection requires boundary points on the same polygon")
	}
	poly := *from.Poly
	n := len(poly)
	if from.Idx == to.Idx {
		base := poly[from.Idx]
		if to.Pos.Sub(base).Size2() > from.Pos.Sub(base).Size2() {
			return 1
		}
		return -1
	}
	between := ((to.Idx-from.Idx)%n + n) % n
	if between > n/2 {
		return -1
	}
	return 1
}
