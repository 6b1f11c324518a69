package geom

import "math"

// BoundaryPoint identifies a location on a polygon's boundary: the owning
// polygon, the index of the vertex that begins the segment containing the
// location, and the exact coordinate, which may lie strictly between two
// vertices. BoundaryPoints are ephemeral: they are created and consumed
// within a single query or splice and must not outlive the polygon storage
// they reference.
type BoundaryPoint struct {
	Poly *Polygon
	Idx  int
	Pos  Point
}

// closestOnSegment returns the point on segment a-b nearest to ref.
func closestOnSegment(a, b, ref Point) Point {
	ab := b.Sub(a)
	len2 := ab.Size2()
	if len2 == 0 {
		return a
	}
	t := ref.Sub(a).Dot(ab)
	if t <= 0 {
		return a
	}
	if t >= len2 {
		return b
	}
	f := float64(t) / float64(len2)
	return Point{
		X: a.X + int64(math.Round(f*float64(ab.X))),
		Y: a.Y + int64(math.Round(f*float64(ab.Y))),
	}
}

// ClosestPoint returns the location on poly nearest to ref, checking every
// edge exactly. The polygon must not be empty.
func ClosestPoint(poly *Polygon, ref Point) BoundaryPoint {
	p := *poly
	best := BoundaryPoint{Poly: poly, Idx: 0, Pos: p[0]}
	bestDist2 := p[0].Sub(ref).Size2()
	n := len(p)
	for i := 0; i < n; i++ {
		candidate := closestOnSegment(p[i], p[(i+1)%n], ref)
		d2 := candidate.Sub(ref).Size2()
		if d2 < bestDist2 {
			best = BoundaryPoint{Poly: poly, Idx: i, Pos: candidate}
			bestDist2 = d2
		}
	}
	return best
}

// smallestConnectionRounds caps the alternating refinement in
// SmallestConnection. Convergence is usually immediate; the cap only guards
// against oscillation between equidistant locations.
const smallestConnectionRounds = 8

// SmallestConnection returns a locally closest pair of boundary points
// between two different polygons. The search is seeded at the first vertex
// of a and refined by alternating exact closest-point projections until the
// pair stops improving. The result approximates the globally closest pair;
// the only guarantee is that each refinement round improves or preserves the
// distance.
func SmallestConnection(a, b *Polygon) (onA, onB BoundaryPoint) {
	onA = BoundaryPoint{Poly: a, Idx: 0, Pos: (*a)[0]}
	onB = ClosestPoint(b, onA.Pos)
	dist2 := onB.Pos.Sub(onA.Pos).Size2()
	for round := 0; round < smallestConnectionRounds; round++ {
		onA = ClosestPoint(a, onB.Pos)
		onB = ClosestPoint(b, onA.Pos)
		d2 := onB.Pos.Sub(onA.Pos).Size2()
		if d2 >= dist2 {
			break
		}
		dist2 = d2
	}
	return onA, onB
}

// NextParallelIntersection walks the boundary of start's polygon, in
// increasing vertex order when forward is true and decreasing order
// otherwise, and returns the first boundary location whose perpendicular
// offset from the line start->lineTo reaches dist on either side of that
// line. It reports false when the walk exhausts the polygon without ever
// reaching that offset, or when the line is degenerate.
func NextParallelIntersection(start BoundaryPoint, lineTo Point, dist int64, forward bool) (BoundaryPoint, bool) {
	if dist <= 0 {
		return BoundaryPoint{}, false
	}
	poly := *start.Poly
	n := len(poly)
	p0 := start.Pos
	line := lineTo.Sub(p0)
	lineLen := math.Sqrt(float64(line.Size2()))
	if lineLen == 0 {
		return BoundaryPoint{}, false
	}
	// Unit perpendicular of the reference line; offset(v) is the signed
	// distance of v from the line, positive on the CCW side.
	ux := -float64(line.Y) / lineLen
	uy := float64(line.X) / lineLen

	offset := func(v Point) float64 {
		return ux*float64(v.X-p0.X) + uy*float64(v.Y-p0.Y)
	}

	limit := float64(dist)
	prevPos := p0
	prevOff := 0.0
	for k := 0; k < n; k++ {
		var vertIdx, segIdx int
		if forward {
			vertIdx = (start.Idx + 1 + k) % n
			segIdx = ((vertIdx-1)%n + n) % n
		} else {
			vertIdx = ((start.Idx-k)%n + n) % n
			segIdx = vertIdx
		}
		vert := poly[vertIdx]
		off := offset(vert)
		if off >= limit || off <= -limit {
			target := limit
			if off <= -limit {
				target = -limit
			}
			t := (target - prevOff) / (off - prevOff)
			cross := Point{
				X: prevPos.X + int64(math.Round(t*float64(vert.X-prevPos.X))),
				Y: prevPos.Y + int64(math.Round(t*float64(vert.Y-prevPos.Y))),
			}
			return BoundaryPoint{Poly: start.Poly, Idx: segIdx, Pos: cross}, true
		}
		prevPos = vert
		prevOff = off
	}
	return BoundaryPoint{}, false
}
