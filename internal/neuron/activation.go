package neuron

import (
	"github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/perceptron/internal/model"
)

// Activate applies the activation function of the given kind to the pre-activation sum x.
func Activate(kind model.Activation, x float64) float64 {
	switch kind {
	case model.Step:
		if x >= 0 {
			return 1
		}
		return 0
	case model.Tanh:
		return ml.TanH.F(x)
	case model.ReLU:
		return ml.ReLU.F(x)
	default:
		return ml.Sigmoid.F(x)
	}
}

// Derivative returns the derivative of the activation function of the given kind at the pre-activation sum x.
// Step is not differentiable, it contributes no gradient.
func Derivative(kind model.Activation, x float64) float64 {
	switch kind {
	case model.Step:
		return 0
	case model.Tanh:
		// the ml module derivatives are expressed on the activation output
		return ml.TanH.D(ml.TanH.F(x))
	case model.ReLU:
		if x > 0 {
			return 1
		}
		return 0
	default:
		return ml.Sigmoid.D(ml.Sigmoid.F(x))
	}
}
