// Package render draws segment groups, their intersections, and connectivity over time as plots.
package render

import (
	"fmt"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/sweepline"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"
)

// Snapshot returns a plot of the segments of all groups, with a colour per group, and the intersections marked by circles.
func Snapshot(title string, groups []sweepline.Group, zs []sweepline.Intersection) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for i, g := range groups {
		for j, s := range g.Segments {
			line, err := plotter.NewLine(plotter.XYs{{X: s.Left.X, Y: s.Left.Y}, {X: s.Right.X, Y: s.Right.Y}})
			if err != nil {
				return nil, err
			}
			line.LineStyle.Color = plotutil.Color(i)
			line.LineStyle.Width = 1.0
			p.Add(line)
			if j == 0 {
				p.Legend.Add(fmt.Sprintf("group %d", g.ID), line)
			}
		}
	}

	if 0 < len(zs) {
		xys := make(plotter.XYs, len(zs))
		for i, z := range zs {
			xys[i].X = z.X
			xys[i].Y = z.Y
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = 3.0
		p.Add(scatter)
		p.Legend.Add("intersection", scatter)
	}
	return p, nil
}

// Fractions returns a line plot of the fraction of connected groups per timestep.
func Fractions(title string, reports []sweepline.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "timestep"
	p.Y.Label.Text = "connected"
	p.Y.Min, p.Y.Max = 0.0, 1.0

	xys := make(plotter.XYs, len(reports))
	for i, f := range sweepline.Fractions(reports) {
		xys[i].X = float64(i)
		xys[i].Y = f
	}
	if err := plotutil.AddLinePoints(p, "fraction", xys); err != nil {
		return nil, err
	}
	return p, nil
}

// Write draws the plot on a canvas of the given size in millimeters and writes it to a file, the format is deduced from the file extension.
func Write(filename string, p *plot.Plot, width, height float64) error {
	c := canvas.New(width, height)
	p.Draw(renderers.NewGonumPlot(c))
	return renderers.Write(filename, c)
}
