// Package order provides a nearest-neighbour visit-order optimizer for
// positioned items, used to sequence printable loops so the head travels as
// little as possible between them.
package order

import "github.com/chazu/strata/pkg/geom"

// Optimizer accumulates items with a representative location and computes a
// greedy travel-minimizing visit order. The zero value is ready to use.
type Optimizer[T any] struct {
	locations []geom.Point
	items     []T
}

// Add registers an item at the given representative location, typically the
// loop's entry vertex.
func (o *Optimizer[T]) Add(location geom.Point, item T) {
	o.locations = append(o.locations, location)
	o.items = append(o.items, item)
}

// Len returns the number of registered items.
func (o *Optimizer[T]) Len() int {
	return len(o.items)
}

// Item returns the i-th registered item in insertion order.
func (o *Optimizer[T]) Item(i int) T {
	return o.items[i]
}

// Location returns the i-th registered location in insertion order.
func (o *Optimizer[T]) Location(i int) geom.Point {
	return o.locations[i]
}

// Order returns the insertion indices of all items in visit order: starting
// from start, repeatedly pick the nearest unvisited location and move there.
// Ties resolve to the item added first, so the order is deterministic.
func (o *Optimizer[T]) Order(start geom.Point) []int {
	n := len(o.items)
	result := make([]int, 0, n)
	visited := make([]bool, n)
	pos := start
	for len(result) < n {
		best := -1
		var bestDist2 int64
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			d2 := o.locations[i].Sub(pos).Size2()
			if best < 0 || d2 < bestDist2 {
				best = i
				bestDist2 = d2
			}
		}
		visited[best] = true
		result = append(result, best)
		pos = o.locations[best]
	}
	return result
}
