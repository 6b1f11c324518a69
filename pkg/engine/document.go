package engine

import (
	"github.com/chazu/strata/pkg/geom"
	"github.com/chazu/strata/pkg/tower"
)

// Default settings applied when a script does not call (settings ...).
// Micrometers: a 0.4 mm line and a 2 mm bridging reach.
const (
	DefaultLineWidth int64 = 400
	DefaultMaxDist   int64 = 2000
)

// Document is the result of evaluating a layer script: the contours it
// declared, the bridging settings, and an optional prime tower.
type Document struct {
	Polygons  geom.Polygons
	LineWidth int64
	MaxDist   int64
	Tower     *tower.Config
}

// NewDocument returns an empty Document with default settings.
func NewDocument() *Document {
	return &Document{
		LineWidth: DefaultLineWidth,
		MaxDist:   DefaultMaxDist,
	}
}
