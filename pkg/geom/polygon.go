package geom

// Polygon is a closed contour: an ordered, cyclic sequence of points in
// which consecutive points define edges, with an implicit edge from the last
// point back to the first. Winding carries meaning: a counter-clockwise
// contour is an outer boundary, a clockwise one a hole.
type Polygon []Point

// Polygons is a collection of contours, typically everything on one print
// layer or one region of it. Order is preserved for determinism.
type Polygons []Polygon

// At returns the vertex at index i, wrapping modulo the vertex count so that
// negative and out-of-range indices address the cyclic sequence.
func (p Polygon) At(i int) Point {
	n := len(p)
	return p[((i%n)+n)%n]
}

// Area2 returns twice the signed area of the polygon (shoelace sum).
// Positive for counter-clockwise contours.
func (p Polygon) Area2() int64 {
	var sum int64
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum
}

// Area returns the signed area of the polygon in square micrometers.
func (p Polygon) Area() int64 {
	return p.Area2() / 2
}

// IsCCW reports whether the polygon winds counter-clockwise.
func (p Polygon) IsCCW() bool {
	return p.Area2() > 0
}

// Perimeter returns the length of the closed boundary, including the
// wrap-around edge.
func (p Polygon) Perimeter() int64 {
	var sum int64
	n := len(p)
	for i := 0; i < n; i++ {
		sum += p[(i+1)%n].Sub(p[i]).Size()
	}
	return sum
}

// Reverse flips the winding of the polygon in place.
func (p Polygon) Reverse() {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// Clone returns a deep copy of the polygon.
func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// BoundingBox returns the lower-left and upper-right corners of the
// polygon's axis-aligned bounding box. Both are zero for an empty polygon.
func (p Polygon) BoundingBox() (lo, hi Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	lo, hi = p[0], p[0]
	for _, v := range p[1:] {
		if v.X < lo.X {
			lo.X = v.X
		}
		if v.Y < lo.Y {
			lo.Y = v.Y
		}
		if v.X > hi.X {
			hi.X = v.X
		}
		if v.Y > hi.Y {
			hi.Y = v.Y
		}
	}
	return lo, hi
}

// Centroid returns the arithmetic mean of the polygon's vertices. This is
// the vertex centroid, not the area centroid, which is all the layer
// pipeline needs for seeding searches and ordering loops.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var sum Point
	for _, v := range p {
		sum = sum.Add(v)
	}
	return sum.Div(int64(len(p)))
}

// Clone returns a deep copy of the collection.
func (ps Polygons) Clone() Polygons {
	out := make(Polygons, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// Perimeter returns the summed boundary length of all contours.
func (ps Polygons) Perimeter() int64 {
	var sum int64
	for _, p := range ps {
		sum += p.Perimeter()
	}
	return sum
}
