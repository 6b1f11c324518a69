package connect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/strata/pkg/geom"
)

// square builds a counter-clockwise unit square with its lower-left corner
// at (x, y) and the given edge length.
func square(x, y, size int64) geom.Polygon {
	return geom.Polygon{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	}
}

// requireNoZeroEdges asserts that no contour contains consecutive coincident
// vertices, including across the wrap-around edge.
func requireNoZeroEdges(t *testing.T, polys geom.Polygons) {
	t.Helper()
	for _, p := range polys {
		n := len(p)
		for i := 0; i < n; i++ {
			require.NotEqual(t, p[i], p[(i+1)%n],
				"zero-length edge at vertex %d", i)
		}
	}
}

func TestConnectMergesTwoSquares(t *testing.T) {
	input := geom.Polygons{
		square(0, 0, 1000),
		square(1100, 0, 1000),
	}
	c := New(400, 1000)
	out := c.Connect(input)

	require.Len(t, out, 1)
	require.Len(t, c.Bridges(), 1)

	// One loop spanning both squares: the eight original corners plus the
	// two second-connection feet at y=400 on the facing edges.
	expected := geom.Polygon{
		{X: 1100, Y: 400}, {X: 1100, Y: 1000}, {X: 2100, Y: 1000},
		{X: 2100, Y: 0}, {X: 1100, Y: 0}, {X: 1000, Y: 0},
		{X: 0, Y: 0}, {X: 0, Y: 1000}, {X: 1000, Y: 1000},
		{X: 1000, Y: 400},
	}
	assert.Equal(t, expected, out[0])
	requireNoZeroEdges(t, out)
}

func TestConnectRespectsMaxDist(t *testing.T) {
	a := square(0, 0, 1000)
	b := square(1100, 0, 1000) // gap of 100, beyond a maxDist of 50
	c := New(400, 50)
	out := c.Connect(geom.Polygons{a, b})

	require.Len(t, out, 2)
	assert.Empty(t, c.Bridges())
	// Unmatched contours come out with identical vertices.
	assert.Contains(t, out, a)
	assert.Contains(t, out, b)
}

func TestConnectSingleContourUnchanged(t *testing.T) {
	in := square(0, 0, 1000)
	c := New(400, 1000)
	out := c.Connect(geom.Polygons{in})

	require.Len(t, out, 1)
	assert.Equal(t, in, out[0])
	assert.Equal(t, in.IsCCW(), out[0].IsCCW())
	assert.Empty(t, c.Bridges())
}

func TestConnectEmptyInput(t *testing.T) {
	c := New(400, 1000)
	out := c.Connect(nil)
	assert.Empty(t, out)
}

func TestConnectInputNotMutated(t *testing.T) {
	input := geom.Polygons{
		square(0, 0, 1000),
		square(1100, 0, 1000),
	}
	snapshot := input.Clone()
	New(400, 1000).Connect(input)
	assert.Equal(t, snapshot, input)
}

func TestConnectChainCollapsesToOneLoop(t *testing.T) {
	input := geom.Polygons{
		square(0, 0, 1000),
		square(1100, 0, 1000),
		square(2200, 0, 1000),
	}
	c := New(400, 1000)
	out := c.Connect(input)

	require.Len(t, out, 1)
	require.Len(t, c.Bridges(), 2)
	requireNoZeroEdges(t, out)
}

func TestConnectGridCardinality(t *testing.T) {
	var input geom.Polygons
	for i := int64(0); i < 3; i++ {
		for j := int64(0); j < 3; j++ {
			input = append(input, square(i*1100, j*1100, 1000))
		}
	}
	c := New(400, 1000)
	out := c.Connect(input)

	assert.LessOrEqual(t, len(out), len(input))
	assert.NotEmpty(t, out)
	// Every accepted bridge removes exactly one contour.
	assert.Equal(t, len(input)-len(out), len(c.Bridges()))
	requireNoZeroEdges(t, out)
}

func TestBridgesAreAdmissible(t *testing.T) {
	const maxDist = 1000
	input := geom.Polygons{
		square(0, 0, 1000),
		square(1100, 0, 1000),
		square(2200, 0, 1000),
	}
	c := New(400, maxDist)
	c.Connect(input)

	require.NotEmpty(t, c.Bridges())
	for _, b := range c.Bridges() {
		// The first connection of each bridge was bounded by maxDist; after
		// canonicalization it can sit in either slot.
		first := b.A.Length2()
		if b.B.Length2() < first {
			first = b.B.Length2()
		}
		assert.LessOrEqual(t, first, int64(maxDist*maxDist))
	}
}

func TestBridgeOrientationIsCanonical(t *testing.T) {
	var input geom.Polygons
	for i := int64(0); i < 4; i++ {
		input = append(input, square(i*1100, 0, 1000))
	}
	c := New(400, 1000)
	c.Connect(input)

	require.NotEmpty(t, c.Bridges())
	for _, b := range c.Bridges() {
		aVec := b.A.To.Pos.Sub(b.A.From.Pos)
		side := aVec.Turn90CCW()
		assert.LessOrEqual(t, side.Dot(b.B.From.Pos.Sub(b.A.From.Pos)), int64(0),
			"connection A must be the left one")
	}
}
