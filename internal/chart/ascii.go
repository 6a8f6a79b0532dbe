package chart

import (
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pid2go/internal/util"
)

const DefaultCaption = "Height / Step (smoothed), target dashed"

type Options struct {
	Height  int
	Width   int
	Samples int
	Caption string
	Color   bool
}

// RenderASCII plots the smoothed states together with a constant target reference line
func RenderASCII(states []float64, target float64, options Options) (string, error) {
	if !util.IsFinite(target) {
		return "", ErrNonFiniteTrace
	}
	_, smoothed, err := Smooth(states, options.Samples)
	if err != nil {
		return "", err
	}

	if len(smoothed) == 1 {
		// a single point cannot be stretched to the graph width
		smoothed = []float64{smoothed[0], smoothed[0]}
	}

	caption := options.Caption
	if len(caption) <= 0 {
		caption = DefaultCaption
	}

	graphOptions := []asciigraph.Option{
		asciigraph.Height(options.Height),
		asciigraph.Width(options.Width),
		asciigraph.Caption(caption),
	}
	if options.Color {
		graphOptions = append(graphOptions, asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red))
	}

	data := [][]float64{
		smoothed,
		util.Repeat(target, len(smoothed)),
	}
	return asciigraph.PlotMany(data, graphOptions...), nil
}
