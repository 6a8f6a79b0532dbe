package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestGetWindowMax(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	maximumm := GetWindowMax(window)

	// THEN
	assert.Equal(t, 3.0, maximumm)
}

func TestGetWindowMax_DropsOldValues(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(2)
	window.Append(9)
	window.Append(1)
	window.Append(2)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 2.0, maximum)
}
