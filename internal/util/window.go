package util

import "github.com/asecurityteam/rolling"

// CreateRollingWindow creates a window of size points, initially all 0
func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// FillWindow appends value size times, replacing the whole window content
func FillWindow(window *rolling.PointPolicy, size int, value float64) {
	for i := 0; i < size; i++ {
		window.Append(value)
	}
}

func GetWindowAvg(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Avg)
}

func GetWindowMax(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Max)
}

// GetWindowValues returns all values currently held by the window, in storage order
func GetWindowValues(window *rolling.PointPolicy) []float64 {
	var result []float64
	window.Reduce(func(w rolling.Window) float64 {
		for _, bucket := range w {
			result = append(result, bucket...)
		}
		return 0
	})
	return result
}
