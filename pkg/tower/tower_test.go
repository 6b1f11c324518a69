package tower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/strata/pkg/tower"
)

func makeConfig(minVolume float64) *tower.Config {
	return &tower.Config{
		Size:        6000,
		X:           6000,
		Y:           0,
		LineWidth:   400,
		LayerHeight: 200,
		Flow:        1.0,
		MinVolume:   minVolume,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, makeConfig(2).Validate())

	bad := makeConfig(2)
	bad.Size = 0
	assert.ErrorContains(t, bad.Validate(), "size must be positive")

	bad = makeConfig(2)
	bad.Flow = 0
	assert.ErrorContains(t, bad.Validate(), "flow must be positive")

	bad = makeConfig(-1)
	assert.ErrorContains(t, bad.Validate(), "minimum volume")
}

func TestGroundSquare(t *testing.T) {
	cfg := makeConfig(1)
	ground := cfg.Ground()
	require.Len(t, ground, 4)
	assert.True(t, ground.IsCCW())
	lo, hi := ground.BoundingBox()
	assert.Equal(t, int64(0), lo.X)
	assert.Equal(t, int64(6000), hi.X)
	assert.Equal(t, int64(0), lo.Y)
	assert.Equal(t, int64(6000), hi.Y)
}

func TestGroundCircle(t *testing.T) {
	cfg := makeConfig(1)
	cfg.Circular = true
	ground := cfg.Ground()
	require.Len(t, ground, 32)
	assert.True(t, ground.IsCCW())

	// Every vertex sits on the inscribed circle, radius half the size.
	mid := cfg.Middle()
	for _, v := range ground {
		d := v.Sub(mid).Size()
		assert.InDelta(t, 3000, float64(d), 1.5)
	}
}

func TestMiddle(t *testing.T) {
	cfg := makeConfig(1)
	mid := cfg.Middle()
	assert.Equal(t, int64(3000), mid.X)
	assert.Equal(t, int64(3000), mid.Y)
}

func TestRingsStopAtMinVolume(t *testing.T) {
	rings, volume := makeConfig(3.0).Rings()
	require.Len(t, rings, 2)
	assert.InDelta(t, 3.328, volume, 1e-9)

	// The first wall is inset half a line width; side 6000 - 400.
	lo, hi := rings[0].BoundingBox()
	assert.Equal(t, int64(5600), hi.X-lo.X)
}

func TestRingsCapOutWhenFootprintExhausted(t *testing.T) {
	// More volume than the footprint can ever hold: ring generation stops
	// when the inset collapses at the center.
	rings, volume := makeConfig(1000).Rings()
	assert.Len(t, rings, 7)
	assert.Less(t, volume, 1000.0)
	assert.Greater(t, volume, 0.0)
}

func TestRingCountMonotoneInVolume(t *testing.T) {
	prev := 0
	for _, min := range []float64{0.5, 1.0, 2.0, 3.0, 5.0, 7.0} {
		rings, _ := makeConfig(min).Rings()
		assert.GreaterOrEqual(t, len(rings), prev, "min volume %g", min)
		prev = len(rings)
	}
}

func TestLoopsBridgeAdjacentRings(t *testing.T) {
	loops, bridges := makeConfig(3.0).Loops()
	require.Len(t, loops, 1)
	assert.Len(t, bridges, 1)
}

func TestLoopsCardinality(t *testing.T) {
	cfg := makeConfig(5.0)
	rings, _ := cfg.Rings()
	loops, bridges := cfg.Loops()
	assert.LessOrEqual(t, len(loops), len(rings))
	assert.Equal(t, len(rings)-len(loops), len(bridges))
}
