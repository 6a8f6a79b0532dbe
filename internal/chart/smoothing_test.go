package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmooth_PassesThroughStates(t *testing.T) {
	// GIVEN
	states := []float64{45, 55.5, 49.2, 50.8, 49.9, 50.1}

	// WHEN
	// 11 samples over [0..5] hit every integer step
	xs, ys, err := Smooth(states, 11)

	// THEN
	require.NoError(t, err)
	require.Len(t, xs, 11)
	require.Len(t, ys, 11)
	assert.Equal(t, 0.0, xs[0])
	assert.Equal(t, 5.0, xs[10])
	for i, state := range states {
		assert.InDelta(t, state, ys[2*i], 1e-9, "step: %d", i)
	}
}

func TestSmooth_DoesNotModifyStates(t *testing.T) {
	// GIVEN
	states := []float64{0, 10, 5, 7}
	original := append([]float64{}, states...)

	// WHEN
	_, _, err := Smooth(states, 300)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, original, states)
}

func TestSmooth_FewPoints(t *testing.T) {
	tests := []struct {
		name   string
		states []float64
	}{
		{name: "Two points", states: []float64{0, 10}},
		{name: "Three points", states: []float64{0, 10, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, ys, err := Smooth(tt.states, 5)
			require.NoError(t, err)
			assert.Len(t, xs, 5)
			assert.InDelta(t, tt.states[0], ys[0], 1e-9)
			assert.InDelta(t, tt.states[len(tt.states)-1], ys[4], 1e-9)
		})
	}
}

func TestSmooth_SinglePoint(t *testing.T) {
	// WHEN
	xs, ys, err := Smooth([]float64{45}, 300)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, xs)
	assert.Equal(t, []float64{45}, ys)
}

func TestSmooth_NonFinite(t *testing.T) {
	// WHEN
	_, _, err := Smooth([]float64{0, math.Inf(1), math.NaN()}, 300)

	// THEN
	assert.ErrorIs(t, err, ErrNonFiniteTrace)
}

func TestSmooth_TooFewSamples(t *testing.T) {
	// WHEN
	_, _, err := Smooth([]float64{0, 1, 2}, 1)

	// THEN
	assert.EqualError(t, err, "samples must be >= 2, got 1")
}
