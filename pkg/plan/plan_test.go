package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/strata/pkg/geom"
)

func wallConfig() *PathConfig {
	return &PathConfig{
		LineWidth:   400,
		LayerHeight: 200,
		Speed:       50,
		Flow:        1.0,
		FanSpeed:    100,
	}
}

func travelConfig() *PathConfig {
	return &PathConfig{Speed: 150, Travel: true}
}

func square(x, y, size int64) geom.Polygon {
	return geom.Polygon{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	}
}

func TestExtrusionMM3PerMM(t *testing.T) {
	assert.InDelta(t, 0.08, wallConfig().ExtrusionMM3PerMM(), 1e-9)
	assert.Zero(t, travelConfig().ExtrusionMM3PerMM())

	boosted := wallConfig()
	boosted.Flow = 1.1
	assert.InDelta(t, 0.088, boosted.ExtrusionMM3PerMM(), 1e-9)
}

func TestPlanLayerAlternatesTravelAndExtrude(t *testing.T) {
	polys := geom.Polygons{
		square(10_000, 0, 1000),
		square(1000, 0, 1000),
	}
	lp := PlanLayer(polys, wallConfig(), travelConfig(), geom.Point{})

	require.Len(t, lp.Paths, 4)
	for i, p := range lp.Paths {
		if i%2 == 0 {
			assert.True(t, p.Config.Travel, "path %d should be travel", i)
		} else {
			assert.False(t, p.Config.Travel, "path %d should extrude", i)
		}
	}

	// Nearest loop first: the square at x=1000 before the one at x=10000.
	assert.Equal(t, geom.Point{X: 1000, Y: 0}, lp.Paths[0].Points[1])
	assert.Equal(t, geom.Point{X: 10_000, Y: 0}, lp.Paths[2].Points[1])
	// Travel legs chain from the previous loop's entry vertex.
	assert.Equal(t, geom.Point{X: 1000, Y: 0}, lp.Paths[2].Points[0])
}

func TestPlanLayerClosesLoops(t *testing.T) {
	lp := PlanLayer(geom.Polygons{square(0, 0, 1000)}, wallConfig(), travelConfig(), geom.Point{})
	require.Len(t, lp.Paths, 2)
	loop := lp.Paths[1].Points
	require.Len(t, loop, 5)
	assert.Equal(t, loop[0], loop[len(loop)-1])
}

func TestPlanLayerSkipsDegenerateContours(t *testing.T) {
	polys := geom.Polygons{
		{{X: 0, Y: 0}, {X: 1000, Y: 0}},
		square(0, 0, 1000),
	}
	lp := PlanLayer(polys, wallConfig(), travelConfig(), geom.Point{})
	assert.Len(t, lp.Paths, 2)
}

func TestEstimates(t *testing.T) {
	lp := PlanLayer(geom.Polygons{square(3000, 0, 1000)}, wallConfig(), travelConfig(), geom.Point{})
	est := lp.Estimates()

	assert.InDelta(t, 3.0, est.TravelMM, 1e-9)
	assert.InDelta(t, 4.0, est.ExtrudeMM, 1e-9)
	assert.InDelta(t, 4.0*0.08, est.MaterialMM3, 1e-9)
	assert.InDelta(t, 3.0/150+4.0/50, est.TimeSeconds, 1e-9)
}

func TestEmptyPlan(t *testing.T) {
	lp := PlanLayer(nil, wallConfig(), travelConfig(), geom.Point{})
	assert.Empty(t, lp.Paths)
	assert.Zero(t, lp.Estimates())
}
