// Package plan turns a set of closed contours into an ordered print plan for
// one layer: alternating travel and extrusion paths with per-layer material
// and time estimates.
package plan

import (
	"github.com/chazu/strata/pkg/geom"
	"github.com/chazu/strata/pkg/order"
)

// PathConfig describes how one kind of path is printed. Lengths are integer
// micrometers; Speed is mm/s; Flow is a ratio with 1.0 nominal; FanSpeed is a
// percentage. Travel paths move without extruding.
type PathConfig struct {
	LineWidth   int64
	LayerHeight int64
	Speed       float64
	Flow        float64
	FanSpeed    float64
	Travel      bool
}

// ExtrusionMM3PerMM returns the material volume deposited per millimeter of
// path: the line cross-section scaled by the flow ratio. Zero for travel
// configs.
func (c *PathConfig) ExtrusionMM3PerMM() float64 {
	if c.Travel {
		return 0
	}
	return float64(c.LineWidth) / 1000.0 * float64(c.LayerHeight) / 1000.0 * c.Flow
}

// Path is a polyline printed with a single config.
type Path struct {
	Config *PathConfig
	Points []geom.Point
}

// Length returns the path's polyline length in micrometers.
func (p *Path) Length() int64 {
	var total int64
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i].Sub(p.Points[i-1]).Size()
	}
	return total
}

// Estimates summarizes a layer plan. Lengths are millimeters.
type Estimates struct {
	TravelMM    float64
	ExtrudeMM   float64
	MaterialMM3 float64
	TimeSeconds float64
}

// LayerPlan is the ordered sequence of paths for one layer.
type LayerPlan struct {
	Paths []Path
}

// Estimates accumulates length, material, and time over all paths. Paths with
// a non-positive speed contribute no time.
func (lp *LayerPlan) Estimates() Estimates {
	var est Estimates
	for i := range lp.Paths {
		p := &lp.Paths[i]
		mm := float64(p.Length()) / 1000.0
		if p.Config.Travel {
			est.TravelMM += mm
		} else {
			est.ExtrudeMM += mm
			est.MaterialMM3 += mm * p.Config.ExtrusionMM3PerMM()
		}
		if p.Config.Speed > 0 {
			est.TimeSeconds += mm / p.Config.Speed
		}
	}
	return est
}

// PlanLayer orders the given loops from the start position, nearest entry
// vertex first, and emits one travel path followed by one extrusion path per
// loop. Each loop is closed by repeating its entry vertex. Contours with
// fewer than three vertices are skipped.
func PlanLayer(polys geom.Polygons, extrude, travel *PathConfig, start geom.Point) *LayerPlan {
	var opt order.Optimizer[geom.Polygon]
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		opt.Add(poly[0], poly)
	}

	lp := &LayerPlan{}
	pos := start
	for _, idx := range opt.Order(start) {
		loop := opt.Item(idx)
		entry := loop[0]

		lp.Paths = append(lp.Paths, Path{
			Config: travel,
			Points: []geom.Point{pos, entry},
		})

		pts := make([]geom.Point, 0, len(loop)+1)
		pts = append(pts, loop...)
		pts = append(pts, entry)
		lp.Paths = append(lp.Paths, Path{Config: extrude, Points: pts})

		pos = entry
	}
	return lp
}
