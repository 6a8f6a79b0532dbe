package chart

import (
	"errors"
	"fmt"

	"github.com/markusressel/pid2go/internal/util"
	"gonum.org/v1/gonum/interp"
)

var ErrNonFiniteTrace = errors.New("trace contains non-finite values")

// Smooth resamples the given states at `samples` evenly spaced points
// between the first and the last step, using a cubic spline through all states.
//
// The returned values are purely cosmetic, the spline overshoots
// between steps where the trajectory changes direction.
func Smooth(states []float64, samples int) (xs []float64, ys []float64, err error) {
	if len(states) == 0 {
		return []float64{}, []float64{}, nil
	}
	if !util.AllFinite(states) {
		return nil, nil, ErrNonFiniteTrace
	}
	if len(states) == 1 {
		return []float64{0}, []float64{states[0]}, nil
	}
	if samples < 2 {
		return nil, nil, fmt.Errorf("samples must be >= 2, got %d", samples)
	}

	steps := make([]float64, len(states))
	for i := range steps {
		steps[i] = float64(i)
	}

	predictor, err := fit(steps, states)
	if err != nil {
		return nil, nil, err
	}

	xs = util.Linspace(0, steps[len(steps)-1], samples)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = predictor.Predict(x)
	}
	return xs, ys, nil
}

// fit uses the most accurate interpolation that supports the number of given points
func fit(xs []float64, ys []float64) (interp.Predictor, error) {
	var candidates []interp.FittablePredictor
	if len(xs) >= 4 {
		candidates = append(candidates, &interp.NotAKnotCubic{})
	}
	if len(xs) >= 3 {
		candidates = append(candidates, &interp.NaturalCubic{})
	}
	candidates = append(candidates, &interp.PiecewiseLinear{})

	var err error
	for _, candidate := range candidates {
		if err = candidate.Fit(xs, ys); err == nil {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("unable to interpolate states: %w", err)
}
