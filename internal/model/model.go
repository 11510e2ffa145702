package model

import (
	"errors"
	"fmt"
)

var (
	// DimensionMismatchErr signals an input vector that does not match the neuron input size.
	DimensionMismatchErr = errors.New("dimension mismatch")
	// UnsupportedDimensionErr signals an operation that is only defined for 2 inputs.
	UnsupportedDimensionErr = errors.New("unsupported dimension")
	// EmptyDatasetErr signals a training pass over a dataset without examples.
	EmptyDatasetErr = errors.New("empty dataset")
)

// Example is a labeled point of the 2-d input space.
type Example struct {
	X1    float64 `json:"x1"`
	X2    float64 `json:"x2"`
	Label int     `json:"label"`
}

// NewExample creates a new example.
func NewExample(x1, x2 float64, label int) Example {
	return Example{
		X1:    x1,
		X2:    x2,
		Label: label,
	}
}

// Inputs returns the input vector of the example.
func (e Example) Inputs() []float64 {
	return []float64{e.X1, e.X2}
}

// Target returns the label as the expected neuron output.
func (e Example) Target() float64 {
	return float64(e.Label)
}

func (e Example) String() string {
	return fmt.Sprintf("(%.3f,%.3f)->%d", e.X1, e.X2, e.Label)
}

// Dataset is the ordered set of examples used for a training run.
// NOTE : the order matters, training on the same examples in another order yields a different trajectory.
type Dataset []Example

// Copy returns a new dataset with the same examples.
func (ds Dataset) Copy() Dataset {
	cc := make(Dataset, len(ds))
	copy(cc, ds)
	return cc
}

// Count returns the number of examples per label.
func (ds Dataset) Count() map[int]int {
	count := make(map[int]int)
	for _, e := range ds {
		count[e.Label]++
	}
	return count
}
