// Package monitor renders extraction results for visual inspection: static
// PNG projections via gonum/plot and an interactive 3D HTML page via
// go-echarts.
package monitor

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/edgelines/internal/lines"
)

// Projection selects the axis pair used for 2D plots.
type Projection int

const (
	ProjectXY Projection = iota
	ProjectXZ
	ProjectYZ
)

func (pr Projection) labels() (string, string) {
	switch pr {
	case ProjectXZ:
		return "X", "Z"
	case ProjectYZ:
		return "Y", "Z"
	default:
		return "X", "Y"
	}
}

func (pr Projection) flatten(p lines.Point) (float64, float64) {
	switch pr {
	case ProjectXZ:
		return p.X, p.Z
	case ProjectYZ:
		return p.Y, p.Z
	default:
		return p.X, p.Y
	}
}

// PlotSegments writes a PNG of the residual cloud and the extracted segments
// projected onto the chosen axis pair. cloud may be nil to plot segments only.
func PlotSegments(cloud []lines.Point, segments []lines.Segment, proj Projection, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d segments, %d residual points", len(segments), len(cloud))
	xl, yl := proj.labels()
	p.X.Label.Text = xl
	p.Y.Label.Text = yl

	if len(cloud) > 0 {
		pts := make(plotter.XYs, len(cloud))
		for i, c := range cloud {
			pts[i].X, pts[i].Y = proj.flatten(c)
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("build cloud scatter: %w", err)
		}
		scatter.GlyphStyle.Radius = vg.Points(1)
		scatter.GlyphStyle.Color = color.Gray{Y: 120}
		p.Add(scatter)
		p.Legend.Add("cloud", scatter)
	}

	for i, s := range segments {
		x1, y1 := proj.flatten(s.Start)
		x2, y2 := proj.flatten(s.End)
		line, err := plotter.NewLine(plotter.XYs{{X: x1, Y: y1}, {X: x2, Y: y2}})
		if err != nil {
			return fmt.Errorf("build segment line %d: %w", i, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = color.RGBA{R: 220, G: 30, B: 30, A: 255}
		p.Add(line)
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
