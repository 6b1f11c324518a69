// Package geom provides the 2D geometric primitives for strata: integer
// points, closed polygons, and the boundary queries the layer pipeline is
// built on. Coordinates are int64 micrometers so arithmetic is exact and
// results are reproducible for identical input.
//
// The conventions are mathematical: x increases to the right, y increases up
// the page, and a counter-clockwise contour encloses positive area.
package geom

import "math"

// Point is a 2D coordinate in micrometers. Point is a value type; arithmetic
// returns new values and never mutates in place.
type Point struct {
	X, Y int64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p scaled by f.
func (p Point) Mul(f int64) Point {
	return Point{p.X * f, p.Y * f}
}

// Div returns p divided by f, truncating toward zero.
func (p Point) Div(f int64) Point {
	return Point{p.X / f, p.Y / f}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) int64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) int64 {
	return p.X*q.Y - p.Y*q.X
}

// Size2 returns the squared length of p as a vector.
func (p Point) Size2() int64 {
	return p.X*p.X + p.Y*p.Y
}

// Size returns the length of p as a vector, rounded to the nearest
// micrometer.
func (p Point) Size() int64 {
	return int64(math.Round(math.Sqrt(float64(p.Size2()))))
}

// Turn90CCW returns p rotated 90 degrees counter-clockwise.
func (p Point) Turn90CCW() Point {
	return Point{-p.Y, p.X}
}
