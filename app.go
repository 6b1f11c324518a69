package main

import (
	"log"

	"github.com/chazu/strata/pkg/connect"
	"github.com/chazu/strata/pkg/engine"
	"github.com/chazu/strata/pkg/geom"
	"github.com/chazu/strata/pkg/plan"
	"github.com/chazu/strata/pkg/viz"
)

// Default print parameters for the layer plan. Layer height is micrometers;
// speeds are mm/s.
const (
	defaultLayerHeight int64   = 200
	defaultWallSpeed   float64 = 50
	defaultTravelSpeed float64 = 150
)

// App orchestrates the full pipeline: script evaluation, contour bridging,
// optional prime tower generation, and path planning.
type App struct {
	engine *engine.Engine
}

// SegmentData is a JSON-serializable line segment in micrometers.
type SegmentData struct {
	From geom.Point `json:"from"`
	To   geom.Point `json:"to"`
}

// BridgeData is a JSON-serializable bridge: the two parallel connections
// joining a pair of contours.
type BridgeData struct {
	A SegmentData `json:"a"`
	B SegmentData `json:"b"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Result is the full output of a pipeline run.
type Result struct {
	Loops     geom.Polygons   `json:"loops"`
	Bridges   []BridgeData    `json:"bridges"`
	Estimates plan.Estimates  `json:"estimates"`
	Errors    []EvalErrorData `json:"errors"`
}

// Options adjusts a pipeline run beyond what the script specifies.
// Zero values defer to the script's settings.
type Options struct {
	LineWidth int64  // µm, overrides the script's line width
	MaxDist   int64  // µm, overrides the script's bridging reach
	PlotPath  string // when set, a diagnostic image is written here
}

// NewApp creates a new App with a fresh engine.
func NewApp() *App {
	return &App{engine: engine.NewEngine()}
}

// Evaluate runs the pipeline on script source with no overrides.
func (a *App) Evaluate(source string) Result {
	return a.Run(source, Options{})
}

// Run evaluates the script, bridges its contours, generates the prime tower
// if one was declared, and plans the layer. Fatal failures and eval errors
// are reported in Result.Errors; the pipeline stops at the first failing
// stage.
func (a *App) Run(source string, opts Options) Result {
	result := Result{
		Bridges: []BridgeData{},
		Errors:  []EvalErrorData{},
	}

	doc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	if opts.LineWidth > 0 {
		doc.LineWidth = opts.LineWidth
	}
	if opts.MaxDist > 0 {
		doc.MaxDist = opts.MaxDist
	}

	conn := connect.New(doc.LineWidth, doc.MaxDist)
	loops := conn.Connect(doc.Polygons)
	bridges := conn.Bridges()

	if doc.Tower != nil {
		towerLoops, towerBridges := doc.Tower.Loops()
		loops = append(loops, towerLoops...)
		bridges = append(bridges, towerBridges...)
	}

	layerHeight := defaultLayerHeight
	if doc.Tower != nil && doc.Tower.LayerHeight > 0 {
		layerHeight = doc.Tower.LayerHeight
	}
	wall := &plan.PathConfig{
		LineWidth:   doc.LineWidth,
		LayerHeight: layerHeight,
		Speed:       defaultWallSpeed,
		Flow:        1.0,
		FanSpeed:    100,
	}
	travel := &plan.PathConfig{Speed: defaultTravelSpeed, Travel: true}

	lp := plan.PlanLayer(loops, wall, travel, geom.Point{})

	result.Loops = loops
	result.Estimates = lp.Estimates()
	for _, b := range bridges {
		result.Bridges = append(result.Bridges, BridgeData{
			A: SegmentData{From: b.A.From.Pos, To: b.A.To.Pos},
			B: SegmentData{From: b.B.From.Pos, To: b.B.To.Pos},
		})
	}

	if opts.PlotPath != "" {
		if err := viz.RenderLayer(opts.PlotPath, doc.Polygons, loops, bridges); err != nil {
			log.Printf("Render error: %v", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		}
	}

	return result
}
