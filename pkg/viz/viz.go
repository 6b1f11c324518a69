// Package viz renders diagnostic images of a bridging pass: the input
// contours, the merged output contours, and the accepted bridge segments.
package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/chazu/strata/pkg/connect"
	"github.com/chazu/strata/pkg/geom"
)

var (
	inputColor  = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	outputColor = color.RGBA{B: 200, A: 255}
	bridgeColor = color.RGBA{R: 220, A: 255}
)

// closedXYs converts a contour to plot coordinates, millimeters, with the
// first vertex repeated so the polyline draws closed.
func closedXYs(poly geom.Polygon) plotter.XYs {
	pts := make(plotter.XYs, 0, len(poly)+1)
	for _, v := range poly {
		pts = append(pts, plotter.XY{X: float64(v.X) / 1000, Y: float64(v.Y) / 1000})
	}
	if len(poly) > 0 {
		pts = append(pts, pts[0])
	}
	return pts
}

func addContours(p *plot.Plot, polys geom.Polygons, col color.Color, width vg.Length) error {
	for _, poly := range polys {
		line, err := plotter.NewLine(closedXYs(poly))
		if err != nil {
			return fmt.Errorf("viz: contour line: %w", err)
		}
		line.Color = col
		line.Width = width
		p.Add(line)
	}
	return nil
}

// RenderLayer saves a diagnostic image of one bridging pass to path. The
// format follows the file extension (.png, .svg, .pdf). Input contours draw
// thin and grey, output contours thick and blue, bridge connections red.
func RenderLayer(path string, input, output geom.Polygons, bridges []connect.Bridge) error {
	p := plot.New()
	p.Title.Text = "layer bridging"
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	if err := addContours(p, input, inputColor, vg.Points(1)); err != nil {
		return err
	}
	if err := addContours(p, output, outputColor, vg.Points(2)); err != nil {
		return err
	}

	for _, b := range bridges {
		for _, conn := range []connect.Connection{b.A, b.B} {
			seg, err := plotter.NewLine(plotter.XYs{
				{X: float64(conn.From.Pos.X) / 1000, Y: float64(conn.From.Pos.Y) / 1000},
				{X: float64(conn.To.Pos.X) / 1000, Y: float64(conn.To.Pos.Y) / 1000},
			})
			if err != nil {
				return fmt.Errorf("viz: bridge segment: %w", err)
			}
			seg.Color = bridgeColor
			seg.Width = vg.Points(2)
			p.Add(seg)
		}
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("viz: save %s: %w", path, err)
	}
	return nil
}
