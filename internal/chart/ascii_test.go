package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderASCII(t *testing.T) {
	// GIVEN
	states := []float64{45, 55.5, 49.2, 50.8, 49.9, 50.1}
	options := Options{Height: 10, Width: 60, Samples: 300}

	// WHEN
	graph, err := RenderASCII(states, 50, options)

	// THEN
	require.NoError(t, err)
	assert.Contains(t, graph, DefaultCaption)
	// height + caption line
	assert.GreaterOrEqual(t, len(strings.Split(graph, "\n")), 11)
}

func TestRenderASCII_CustomCaption(t *testing.T) {
	// WHEN
	graph, err := RenderASCII([]float64{0, 10}, 10, Options{Height: 5, Width: 20, Samples: 10, Caption: "Height"})

	// THEN
	require.NoError(t, err)
	assert.Contains(t, graph, "Height")
}

func TestRenderASCII_SingleState(t *testing.T) {
	// WHEN
	graph, err := RenderASCII([]float64{45}, 50, Options{Height: 5, Width: 20, Samples: 300})

	// THEN
	require.NoError(t, err)
	assert.NotEmpty(t, graph)
}

func TestRenderASCII_NonFinite(t *testing.T) {
	// WHEN
	_, err := RenderASCII([]float64{0, math.NaN()}, 50, Options{Height: 5, Width: 20, Samples: 300})

	// THEN
	assert.ErrorIs(t, err, ErrNonFiniteTrace)
}
