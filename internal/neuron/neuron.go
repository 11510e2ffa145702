package neuron

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/perceptron/internal/model"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultRate is the learning rate of a new neuron.
	DefaultRate = 0.1
	// boundaryThreshold is the absolute value below which the second weight is treated as zero.
	boundaryThreshold = 1e-10
	// decisionThreshold splits the neuron output into the two classes.
	decisionThreshold = 0.5
)

// Neuron is a single unit linear classifier trained with gradient descent.
type Neuron struct {
	inputSize  int
	weights    xmath.Vector
	bias       float64
	activation model.Activation
	rate       float64
}

// New creates a neuron with weights and bias drawn uniformly from [-1,1).
func New(inputSize int, rng *rand.Rand) *Neuron {
	weights := xmath.Vec(inputSize)
	for i := range weights {
		weights[i] = rng.Float64()*2 - 1
	}
	return &Neuron{
		inputSize:  inputSize,
		weights:    weights,
		bias:       rng.Float64()*2 - 1,
		activation: model.Sigmoid,
		rate:       DefaultRate,
	}
}

// NewWithWeights creates a neuron with the given weights and bias.
// The input size is the number of weights.
func NewWithWeights(weights []float64, bias float64) *Neuron {
	return &Neuron{
		inputSize:  len(weights),
		weights:    xmath.Vector(weights).Copy(),
		bias:       bias,
		activation: model.Sigmoid,
		rate:       DefaultRate,
	}
}

// WithActivation sets the activation function.
func (n *Neuron) WithActivation(activation model.Activation) *Neuron {
	n.activation = activation
	return n
}

// WithRate sets the learning rate.
func (n *Neuron) WithRate(rate float64) *Neuron {
	n.rate = rate
	return n
}

// InputSize returns the fixed number of inputs.
func (n *Neuron) InputSize() int {
	return n.inputSize
}

// Weights returns a copy of the current weights.
func (n *Neuron) Weights() []float64 {
	return n.weights.Copy()
}

// Bias returns the current bias.
func (n *Neuron) Bias() float64 {
	return n.bias
}

// Activation returns the activation kind.
func (n *Neuron) Activation() model.Activation {
	return n.activation
}

// Rate returns the learning rate.
func (n *Neuron) Rate() float64 {
	return n.rate
}

// Activate applies the neuron activation function.
func (n *Neuron) Activate(x float64) float64 {
	return Activate(n.activation, x)
}

// Derivative returns the derivative of the neuron activation function.
func (n *Neuron) Derivative(x float64) float64 {
	return Derivative(n.activation, x)
}

func (n *Neuron) sum(inputs []float64) (float64, error) {
	if len(inputs) != n.inputSize {
		return 0, fmt.Errorf("%d inputs for neuron of size %d: %w", len(inputs), n.inputSize, model.DimensionMismatchErr)
	}
	return n.bias + n.weights.Dot(inputs), nil
}

// Predict evaluates the neuron on the given inputs.
func (n *Neuron) Predict(inputs []float64) (float64, error) {
	s, err := n.sum(inputs)
	if err != nil {
		return 0, err
	}
	return n.Activate(s), nil
}

// TrainOne applies one gradient descent update for the given example
// and returns the squared error of the prediction made before the update.
func (n *Neuron) TrainOne(inputs []float64, target float64) (float64, error) {
	prediction, err := n.Predict(inputs)
	if err != nil {
		return 0, err
	}
	e := target - prediction
	// the sum is unchanged since the prediction, weights only move below
	s, _ := n.sum(inputs)
	gradient := e * n.Derivative(s)
	for i, x := range inputs {
		n.weights[i] += n.rate * gradient * x
	}
	n.bias += n.rate * gradient
	return e * e, nil
}

// TrainEpoch trains once on every example in dataset order
// and returns the mean squared error of the epoch.
func (n *Neuron) TrainEpoch(ds model.Dataset) (float64, error) {
	if len(ds) == 0 {
		return 0, model.EmptyDatasetErr
	}
	costs := make([]float64, len(ds))
	for i, example := range ds {
		cost, err := n.TrainOne(example.Inputs(), example.Target())
		if err != nil {
			return 0, fmt.Errorf("could not train on example %d %v: %w", i, example, err)
		}
		costs[i] = cost
	}
	return floats.Sum(costs) / float64(len(ds)), nil
}

// Classify thresholds the prediction into one of the two labels.
func (n *Neuron) Classify(inputs []float64) (int, error) {
	p, err := n.Predict(inputs)
	if err != nil {
		return 0, err
	}
	if p >= decisionThreshold {
		return 1, nil
	}
	return 0, nil
}

// Accuracy returns the fraction of the examples the neuron classifies correctly.
func (n *Neuron) Accuracy(ds model.Dataset) (float64, error) {
	if len(ds) == 0 {
		return 0, model.EmptyDatasetErr
	}
	var correct int
	for _, example := range ds {
		label, err := n.Classify(example.Inputs())
		if err != nil {
			return 0, err
		}
		if label == example.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(ds)), nil
}

// DecisionBoundary returns the line where the pre-activation sum is zero.
// If both weights are close to zero the boundary is degenerate and holds non-finite values.
func (n *Neuron) DecisionBoundary() (model.Boundary, error) {
	if n.inputSize != 2 {
		return model.Boundary{}, fmt.Errorf("boundary for neuron of size %d: %w", n.inputSize, model.UnsupportedDimensionErr)
	}
	if math.Abs(n.weights[1]) < boundaryThreshold {
		return model.Vertical(-n.bias / n.weights[0]), nil
	}
	return model.Sloped(-n.weights[0]/n.weights[1], -n.bias/n.weights[1]), nil
}
