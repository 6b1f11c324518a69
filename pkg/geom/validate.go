package geom

import "fmt"

// ValidationError describes a single problem with a contour that would make
// downstream processing unreliable.
type ValidationError struct {
	PolyIdx int // which contour in the collection, -1 for a lone polygon
	Message string
}

func (e ValidationError) Error() string {
	if e.PolyIdx < 0 {
		return e.Message
	}
	return fmt.Sprintf("polygon %d: %s", e.PolyIdx, e.Message)
}

// Validate runs structural checks on a single contour: enough vertices,
// no coincident consecutive vertices, nonzero area, and no edge crossings.
// An empty result means the contour is usable. Read-only.
func (p Polygon) Validate() []ValidationError {
	var errs []ValidationError
	n := len(p)
	if n < 3 {
		errs = append(errs, ValidationError{PolyIdx: -1,
			Message: fmt.Sprintf("degenerate contour: %d vertices", n)})
		return errs
	}
	for i := 0; i < n; i++ {
		if p[i] == p[(i+1)%n] {
			errs = append(errs, ValidationError{PolyIdx: -1,
				Message: fmt.Sprintf("coincident consecutive vertices at index %d", i)})
		}
	}
	if p.Area2() == 0 {
		errs = append(errs, ValidationError{PolyIdx: -1, Message: "zero-area contour"})
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// Skip edges that share a vertex; they meet by construction.
			if (j+1)%n == i || (i+1)%n == j {
				continue
			}
			if segmentsCross(p[i], p[(i+1)%n], p[j], p[(j+1)%n]) {
				errs = append(errs, ValidationError{PolyIdx: -1,
					Message: fmt.Sprintf("self-intersection between edges %d and %d", i, j)})
			}
		}
	}
	return errs
}

// Validate runs Polygon.Validate on every contour, tagging findings with the
// contour index.
func (ps Polygons) Validate() []ValidationError {
	var errs []ValidationError
	for i, p := range ps {
		for _, e := range p.Validate() {
			e.PolyIdx = i
			errs = append(errs, e)
		}
	}
	return errs
}

// segmentsCross reports whether segments a-b and c-d properly intersect.
// Touching at an endpoint does not count.
func segmentsCross(a, b, c, d Point) bool {
	d1 := b.Sub(a).Cross(c.Sub(a))
	d2 := b.Sub(a).Cross(d.Sub(a))
	d3 := d.Sub(c).Cross(a.Sub(c))
	d4 := d.Sub(c).Cross(b.Sub(c))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
