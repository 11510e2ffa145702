package math

import (
	"math"
	"strconv"
)

// Format formats a float with 2 decimals, the precision used for weights and bias labels.
func Format(f float64) string {
	return FormatN(f, 2)
}

// FormatN formats a float with the given number of decimals.
func FormatN(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// Clip restricts the value to the [min,max] range.
func Clip(f, min, max float64) float64 {
	return math.Min(max, math.Max(min, f))
}

// Normalize maps a value from the [min,max] range onto [0,1].
// A zero width range maps everything to 0.
func Normalize(f, min, max float64) float64 {
	width := max - min
	if width == 0 {
		return 0
	}
	return (f - min) / width
}
