package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWindowMax(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 3.0, maximum)
}

func TestGetWindowAvg_DropsOldestValue(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(2)
	window.Append(100)
	window.Append(2)
	window.Append(4)

	// WHEN
	avg := GetWindowAvg(window)

	// THEN
	assert.Equal(t, 3.0, avg)
	assert.ElementsMatch(t, []float64{2, 4}, GetWindowValues(window))
}

func TestCreateRollingWindow_StartsWithZeros(t *testing.T) {
	window := CreateRollingWindow(4)

	assert.Equal(t, 0.0, GetWindowAvg(window))
	assert.Equal(t, 0.0, GetWindowMax(window))
	assert.Equal(t, []float64{0, 0, 0, 0}, GetWindowValues(window))
}

func TestFillWindow(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(4)
	window.Append(5000)

	// WHEN
	FillWindow(window, 4, 2100)

	// THEN
	assert.Equal(t, 2100.0, GetWindowAvg(window))
	assert.Equal(t, 2100.0, GetWindowMax(window))
}
