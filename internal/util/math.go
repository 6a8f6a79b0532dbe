package util

import "math"

// Linspace returns n evenly spaced values in [start..stop], both inclusive.
// For n == 1 only start is returned.
func Linspace(start float64, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}
	result := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := 0; i < n; i++ {
		result[i] = start + float64(i)*step
	}
	// avoid accumulated rounding on the last value
	result[n-1] = stop
	return result
}

func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// AllFinite returns true if none of the given values is NaN or +/-Inf
func AllFinite(values []float64) bool {
	for _, v := range values {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// Repeat returns a slice of length n, filled with value
func Repeat(value float64, n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = value
	}
	return result
}
