package geom

import "math"

// Inset returns the contour displaced inward by dist micrometers, built by
// shifting every edge along its inward normal and intersecting consecutive
// shifted edges (miter joins). A negative dist offsets outward.
//
// The construction assumes a convex contour; it is used for concentric wall
// patterns around convex outlines such as tower footprints. It reports false
// when the contour collapses: when the inset is deep enough that the result
// degenerates or flips winding.
func (p Polygon) Inset(dist int64) (Polygon, bool) {
	n := len(p)
	if n < 3 {
		return nil, false
	}
	ccw := p.IsCCW()

	// Shift each edge along its inward normal. The interior of a CCW
	// contour lies to the left of every directed edge.
	type line struct {
		px, py float64 // point on the shifted line
		dx, dy float64 // direction
	}
	lines := make([]line, n)
	for i := 0; i < n; i++ {
		a := p[i]
		b := p[(i+1)%n]
		d := b.Sub(a)
		length := math.Sqrt(float64(d.Size2()))
		if length == 0 {
			return nil, false
		}
		nx := -float64(d.Y) / length
		ny := float64(d.X) / length
		if !ccw {
			nx, ny = -nx, -ny
		}
		lines[i] = line{
			px: float64(a.X) + nx*float64(dist),
			py: float64(a.Y) + ny*float64(dist),
			dx: float64(d.X),
			dy: float64(d.Y),
		}
	}

	// Each output vertex is the intersection of one shifted edge with the
	// previous one.
	out := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		prev := lines[((i-1)%n+n)%n]
		cur := lines[i]
		det := prev.dx*cur.dy - prev.dy*cur.dx
		if math.Abs(det) < 1e-9 {
			// Collinear consecutive edges: the shifted lines coincide, keep
			// the shared point.
			out = append(out, Point{
				X: int64(math.Round(cur.px)),
				Y: int64(math.Round(cur.py)),
			})
			continue
		}
		t := ((cur.px-prev.px)*cur.dy - (cur.py-prev.py)*cur.dx) / det
		out = append(out, Point{
			X: int64(math.Round(prev.px + t*prev.dx)),
			Y: int64(math.Round(prev.py + t*prev.dy)),
		})
	}

	if out.Area2() == 0 || out.IsCCW() != ccw {
		return nil, false
	}
	return out, true
}

// Inset applies Polygon.Inset to every contour, dropping the ones that
// collapse. The result is empty when nothing survives.
func (ps Polygons) Inset(dist int64) Polygons {
	var out Polygons
	for _, p := range ps {
		if inset, ok := p.Inset(dist); ok {
			out = append(out, inset)
		}
	}
	return out
}
