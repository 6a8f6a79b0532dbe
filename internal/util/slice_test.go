package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMin(t *testing.T) {
	// GIVEN
	values := []float64{3, -1.5, 7}

	// WHEN
	result := Min(values)

	// THEN
	assert.Equal(t, -1.5, result)
}

func TestMax(t *testing.T) {
	// GIVEN
	values := []int{3, -1, 7, 2}

	// WHEN
	result := Max(values)

	// THEN
	assert.Equal(t, 7, result)
}

func TestMinMax_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Min([]float64{}))
	assert.Equal(t, 0.0, Max([]float64{}))
}

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[string]int{
		"kp=2":   1,
		"kp=0.5": 2,
		"kp=1":   3,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []string{"kp=0.5", "kp=1", "kp=2"}, result)
}
