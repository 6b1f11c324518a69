// Package tower generates prime tower wall patterns: concentric rings inset
// from a square or circular footprint until the walls hold enough material,
// then bridged into as few printable loops as possible.
package tower

import (
	"fmt"
	"math"

	"github.com/chazu/strata/pkg/connect"
	"github.com/chazu/strata/pkg/geom"
)

// circleResolution is the segment count of a circular footprint.
const circleResolution = 32

// Config positions and sizes a prime tower. Lengths are micrometers; X, Y is
// the footprint's rightmost corner, with the tower extending toward negative
// X and positive Y. MinVolume is the material the walls must hold per layer,
// in cubic millimeters.
type Config struct {
	Size        int64
	X, Y        int64
	Circular    bool
	LineWidth   int64
	LayerHeight int64
	Flow        float64
	MinVolume   float64
}

// Validate reports the first configuration problem, or nil.
func (c *Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("tower: size must be positive, got %d", c.Size)
	case c.LineWidth <= 0:
		return fmt.Errorf("tower: line width must be positive, got %d", c.LineWidth)
	case c.LayerHeight <= 0:
		return fmt.Errorf("tower: layer height must be positive, got %d", c.LayerHeight)
	case c.Flow <= 0:
		return fmt.Errorf("tower: flow must be positive, got %g", c.Flow)
	case c.MinVolume < 0:
		return fmt.Errorf("tower: minimum volume must not be negative, got %g", c.MinVolume)
	}
	return nil
}

// Middle returns the center of the footprint.
func (c *Config) Middle() geom.Point {
	return geom.Point{X: c.X - c.Size/2, Y: c.Y + c.Size/2}
}

// Ground returns the footprint outline: a CCW square anchored at (X, Y), or
// a 32-segment circle inscribed in that square when Circular is set.
func (c *Config) Ground() geom.Polygon {
	if !c.Circular {
		return geom.Polygon{
			{X: c.X, Y: c.Y},
			{X: c.X, Y: c.Y + c.Size},
			{X: c.X - c.Size, Y: c.Y + c.Size},
			{X: c.X - c.Size, Y: c.Y},
		}
	}
	mid := c.Middle()
	r := float64(c.Size) / 2
	circle := make(geom.Polygon, 0, circleResolution)
	for i := 0; i < circleResolution; i++ {
		angle := 2 * math.Pi * float64(i) / circleResolution
		circle = append(circle, geom.Point{
			X: mid.X + int64(math.Round(r*math.Cos(angle))),
			Y: mid.Y + int64(math.Round(r*math.Sin(angle))),
		})
	}
	return circle
}

// Rings generates concentric wall rings, innermost wall first at half a line
// width inside the footprint, each subsequent wall one line width deeper,
// until the accumulated extruded volume reaches MinVolume or the inset
// collapses. It returns the rings and the volume they hold, in cubic
// millimeters.
func (c *Config) Rings() (geom.Polygons, float64) {
	ground := c.Ground()
	var rings geom.Polygons
	var volume float64
	for wall := int64(0); ; wall++ {
		ring, ok := ground.Inset(wall*c.LineWidth + c.LineWidth/2)
		if !ok {
			break
		}
		rings = append(rings, ring)
		// Perimeter times line cross-section, µm³ to mm³.
		volume += float64(ring.Perimeter()) * float64(c.LineWidth) *
			float64(c.LayerHeight) * c.Flow / 1e9
		if volume >= c.MinVolume {
			break
		}
	}
	return rings, volume
}

// Loops returns the wall rings bridged into as few printable loops as
// possible, together with the bridges taken.
func (c *Config) Loops() (geom.Polygons, []connect.Bridge) {
	rings, _ := c.Rings()
	// Adjacent ring centerlines sit one line width apart; twice that is
	// enough reach without bridging across the whole footprint.
	conn := connect.New(c.LineWidth, 2*c.LineWidth)
	return conn.Connect(rings), conn.Bridges()
}
