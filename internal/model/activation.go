package model

import (
	"encoding/json"
	"strings"
)

// Activation is the kind of activation function applied to the neuron pre-activation sum.
type Activation int

const (
	// Sigmoid is the logistic function and the default activation.
	Sigmoid Activation = iota
	// Step is the heaviside function, with a zero derivative by convention.
	Step
	// Tanh is the hyperbolic tangent.
	Tanh
	// ReLU is the rectified linear unit.
	ReLU
)

// Activations lists all supported activation kinds.
var Activations = []Activation{Step, Sigmoid, Tanh, ReLU}

var activationNames = map[Activation]string{
	Step:    "step",
	Sigmoid: "sigmoid",
	Tanh:    "tanh",
	ReLU:    "relu",
}

var activationLabels = map[Activation]string{
	Step:    "step",
	Sigmoid: "sigmoid",
	Tanh:    "tanh",
	ReLU:    "ReLU",
}

// ParseActivation parses the given name into an activation kind.
// Unknown names resolve to Sigmoid, the returned flag reports if the name was recognised.
func ParseActivation(name string) (Activation, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for a, n := range activationNames {
		if n == key {
			return a, true
		}
	}
	return Sigmoid, false
}

// String returns the config name of the activation.
func (a Activation) String() string {
	if n, ok := activationNames[a]; ok {
		return n
	}
	return activationNames[Sigmoid]
}

// Label returns the display formula of the activation e.g. 'f(x) = ReLU'.
func (a Activation) Label() string {
	l, ok := activationLabels[a]
	if !ok {
		l = activationLabels[Sigmoid]
	}
	return "f(x) = " + l
}

// MarshalJSON encodes the activation by name.
func (a Activation) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the activation by name.
// Unknown names are not an error, they fall back to Sigmoid.
func (a *Activation) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	*a, _ = ParseActivation(name)
	return nil
}
