package model

import (
	"fmt"
	"math"
)

// BoundaryType distinguishes the two shapes a 2-d decision boundary can take.
type BoundaryType string

const (
	// VerticalBoundary is the line x1 = X.
	VerticalBoundary BoundaryType = "vertical"
	// SlopedBoundary is the line x2 = Slope * x1 + Intercept.
	SlopedBoundary BoundaryType = "sloped"
)

// Boundary is the decision line of a 2-input neuron, where the pre-activation sum is zero.
type Boundary struct {
	Type      BoundaryType `json:"type"`
	X         float64      `json:"x,omitempty"`
	Slope     float64      `json:"slope,omitempty"`
	Intercept float64      `json:"intercept,omitempty"`
}

// Vertical creates a vertical boundary at x.
func Vertical(x float64) Boundary {
	return Boundary{
		Type: VerticalBoundary,
		X:    x,
	}
}

// Sloped creates a boundary with the given slope and intercept.
func Sloped(slope, intercept float64) Boundary {
	return Boundary{
		Type:      SlopedBoundary,
		Slope:     slope,
		Intercept: intercept,
	}
}

// IsVertical returns true if the boundary is a vertical line.
func (b Boundary) IsVertical() bool {
	return b.Type == VerticalBoundary
}

// Finite returns false for degenerate boundaries e.g. when all weights are close to zero.
func (b Boundary) Finite() bool {
	if b.IsVertical() {
		return finite(b.X)
	}
	return finite(b.Slope) && finite(b.Intercept)
}

// At returns the x2 coordinate of the boundary at x1.
// It is undefined for vertical boundaries.
func (b Boundary) At(x1 float64) float64 {
	if b.IsVertical() {
		return math.NaN()
	}
	return b.Slope*x1 + b.Intercept
}

func (b Boundary) String() string {
	if !b.Finite() {
		return "undefined"
	}
	if b.IsVertical() {
		return fmt.Sprintf("x₁ = %.2f", b.X)
	}
	return fmt.Sprintf("x₂ = %.2f x₁ + %.2f", b.Slope, b.Intercept)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
