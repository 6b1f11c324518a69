package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/strata/pkg/connect"
	"github.com/chazu/strata/pkg/geom"
)

func TestRenderLayerWritesImage(t *testing.T) {
	input := geom.Polygons{
		{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}},
		{{X: 1100, Y: 0}, {X: 2100, Y: 0}, {X: 2100, Y: 1000}, {X: 1100, Y: 1000}},
	}
	conn := connect.New(400, 1000)
	output := conn.Connect(input)

	path := filepath.Join(t.TempDir(), "layer.png")
	require.NoError(t, RenderLayer(path, input, output, conn.Bridges()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderLayerSVG(t *testing.T) {
	input := geom.Polygons{
		{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}},
	}
	path := filepath.Join(t.TempDir(), "layer.svg")
	require.NoError(t, RenderLayer(path, input, input, nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderLayerRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layer.bogus")
	err := RenderLayer(path, nil, nil, nil)
	assert.Error(t, err)
}
