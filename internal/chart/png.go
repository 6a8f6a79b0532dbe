package chart

import (
	"fmt"
	"image/color"

	"github.com/markusressel/pid2go/internal/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const Title = "Drone Height Adjustment with PID Control (Smoothed)"

var (
	heightColor = color.RGBA{B: 255, A: 255}
	targetColor = color.RGBA{R: 255, A: 255}
)

// NewPlot creates a plot of the smoothed states and a dashed target line
func NewPlot(states []float64, target float64, samples int) (*plot.Plot, error) {
	if !util.IsFinite(target) {
		return nil, ErrNonFiniteTrace
	}
	xs, ys, err := Smooth(states, samples)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Height (m)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("unable to create height line: %w", err)
	}
	line.LineStyle.Color = heightColor
	line.LineStyle.Width = vg.Points(2)

	targetLine := plotter.NewFunction(func(float64) float64 { return target })
	targetLine.LineStyle.Color = targetColor
	targetLine.LineStyle.Width = vg.Points(1.5)
	targetLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(line, targetLine)
	p.Legend.Add("Smoothed Height", line)
	p.Legend.Add("Target Height", targetLine)
	p.Legend.Top = true

	// the target line has no data range of its own
	p.Y.Min = util.Min([]float64{p.Y.Min, target})
	p.Y.Max = util.Max([]float64{p.Y.Max, target})
	if p.Y.Min == p.Y.Max {
		p.Y.Min--
		p.Y.Max++
	}
	if p.X.Min == p.X.Max {
		p.X.Max++
	}

	return p, nil
}

// SavePNG renders the chart to the given path, the image format
// is derived from the file extension.
func SavePNG(path string, states []float64, target float64, samples int) error {
	p, err := NewPlot(states, target, samples)
	if err != nil {
		return err
	}
	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}
