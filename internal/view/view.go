package view

import (
	"errors"
	"fmt"
	"math"

	pmath "github.com/drakos74/perceptron/internal/math"
	"github.com/drakos74/perceptron/internal/model"
	"gonum.org/v1/gonum/floats"
)

const (
	// PositiveColor is the colour of positive weights and of label 1.
	PositiveColor = "#28a745"
	// NegativeColor is the colour of negative weights and of label 0.
	NegativeColor = "#ffc107"

	minWidth   = 1
	maxWidth   = 8
	widthScale = 5

	costPrecision = 4

	// NoCostData is shown in place of the cost curve before any epoch.
	NoCostData = "no cost data yet"
	// NoGradientData is shown in place of the weight-space view before any epoch.
	NoGradientData = "no gradient data yet"
)

// Neuron is the neuron state the views are built from.
type Neuron interface {
	Weights() []float64
	Bias() float64
	Activation() model.Activation
	DecisionBoundary() (model.Boundary, error)
	Accuracy(ds model.Dataset) (float64, error)
}

// Controls echoes the current configuration.
type Controls struct {
	LearningRate float64          `json:"learning_rate"`
	Activation   model.Activation `json:"activation"`
	Iterations   int              `json:"iterations"`
}

// Progress describes the current training session.
type Progress struct {
	Session   string `json:"session,omitempty"`
	Iteration int    `json:"iteration"`
	Total     int    `json:"total"`
	Running   bool   `json:"running"`
}

// Input gathers everything needed to render one frame.
type Input struct {
	Neuron   Neuron
	Dataset  model.Dataset
	Costs    []float64
	Trend    *float64
	Controls Controls
	Progress Progress
}

// Snapshot is the observable state of the training for one frame.
type Snapshot struct {
	Network  Network  `json:"network"`
	Scatter  Scatter  `json:"scatter"`
	Cost     Cost     `json:"cost"`
	Gradient Gradient `json:"gradient"`
	Accuracy float64  `json:"accuracy"`
	Controls Controls `json:"controls"`
	Progress Progress `json:"progress"`
}

// Build creates the snapshot of all views.
func Build(in Input) (Snapshot, error) {
	if in.Neuron == nil {
		return Snapshot{}, fmt.Errorf("no neuron to render")
	}
	weights := in.Neuron.Weights()

	scatter, err := NewScatter(in.Neuron, in.Dataset)
	if err != nil {
		return Snapshot{}, err
	}

	var accuracy float64
	if len(in.Dataset) > 0 {
		accuracy, err = in.Neuron.Accuracy(in.Dataset)
		if err != nil {
			return Snapshot{}, fmt.Errorf("could not compute accuracy: %w", err)
		}
	}

	cost := NewCost(in.Costs)
	if in.Trend != nil {
		cost.Trend = *in.Trend
	}

	return Snapshot{
		Network:  NewNetwork(weights, in.Neuron.Bias(), in.Neuron.Activation()),
		Scatter:  scatter,
		Cost:     cost,
		Gradient: NewGradient(weights, len(in.Costs)),
		Accuracy: accuracy,
		Controls: in.Controls,
		Progress: in.Progress,
	}, nil
}

// Edge is the connection of one input to the output node.
type Edge struct {
	Input  string  `json:"input"`
	Weight float64 `json:"weight"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
}

// Network is the diagram of the neuron.
type Network struct {
	Edges           []Edge  `json:"edges"`
	Bias            float64 `json:"bias"`
	BiasLabel       string  `json:"bias_label"`
	Activation      string  `json:"activation"`
	ActivationLabel string  `json:"activation_label"`
}

// NewNetwork creates the network diagram for the given weights and bias.
func NewNetwork(weights []float64, bias float64, activation model.Activation) Network {
	edges := make([]Edge, len(weights))
	for i, w := range weights {
		edges[i] = Edge{
			Input:  fmt.Sprintf("x%s", subscript(i+1)),
			Weight: w,
			Label:  fmt.Sprintf("w%s = %s", subscript(i+1), pmath.Format(w)),
			Color:  Color(w),
			Width:  Width(w),
		}
	}
	return Network{
		Edges:           edges,
		Bias:            bias,
		BiasLabel:       fmt.Sprintf("b = %s", pmath.Format(bias)),
		Activation:      activation.String(),
		ActivationLabel: activation.Label(),
	}
}

// Color returns the colour for the sign of the weight.
func Color(w float64) string {
	if w >= 0 {
		return PositiveColor
	}
	return NegativeColor
}

// Width returns the stroke width for the magnitude of the weight.
func Width(w float64) float64 {
	return pmath.Clip(math.Abs(w)*widthScale, minWidth, maxWidth)
}

func subscript(i int) string {
	if i < 0 || i > 9 {
		return fmt.Sprintf("_%d", i)
	}
	return string('₀' + rune(i))
}

// Point is a labelled example in the unit square.
type Point struct {
	X1    float64 `json:"x1"`
	X2    float64 `json:"x2"`
	Label int     `json:"label"`
	Color string  `json:"color"`
}

// Segment is a line segment between two points.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Scatter is the dataset with the current decision boundary.
type Scatter struct {
	Points   []Point         `json:"points"`
	Boundary *model.Boundary `json:"boundary,omitempty"`
	Segment  *Segment        `json:"segment,omitempty"`
}

// NewScatter creates the scatter view.
// The boundary is omitted if the neuron has no 2-d boundary or the boundary is degenerate.
func NewScatter(n Neuron, ds model.Dataset) (Scatter, error) {
	points := make([]Point, len(ds))
	for i, example := range ds {
		points[i] = Point{
			X1:    example.X1,
			X2:    example.X2,
			Label: example.Label,
			Color: labelColor(example.Label),
		}
	}
	scatter := Scatter{Points: points}

	boundary, err := n.DecisionBoundary()
	if err != nil {
		if errors.Is(err, model.UnsupportedDimensionErr) {
			return scatter, nil
		}
		return Scatter{}, fmt.Errorf("could not extract boundary: %w", err)
	}
	if !boundary.Finite() {
		return scatter, nil
	}
	segment := Clip(boundary)
	scatter.Boundary = &boundary
	scatter.Segment = &segment
	return scatter, nil
}

// Clip returns the part of the boundary spanning the unit domain of x1.
func Clip(b model.Boundary) Segment {
	if b.IsVertical() {
		return Segment{X1: b.X, Y1: 0, X2: b.X, Y2: 1}
	}
	return Segment{X1: 0, Y1: b.At(0), X2: 1, Y2: b.At(1)}
}

func labelColor(label int) string {
	if label == 1 {
		return PositiveColor
	}
	return NegativeColor
}

// CostPoint is one epoch on the cost curve.
type CostPoint struct {
	Epoch int     `json:"epoch"`
	Cost  float64 `json:"cost"`
	// Y is the cost scaled to [0,1] between the min and max cost.
	Y float64 `json:"y"`
}

// Cost is the cost curve.
type Cost struct {
	Points  []CostPoint `json:"points"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Current float64     `json:"current"`
	Trend   float64     `json:"trend"`
	Label   string      `json:"label"`
}

// NewCost creates the cost curve for the given history.
func NewCost(costs []float64) Cost {
	if len(costs) == 0 {
		return Cost{
			Points: []CostPoint{},
			Label:  NoCostData,
		}
	}
	min := floats.Min(costs)
	max := floats.Max(costs)
	points := make([]CostPoint, len(costs))
	for i, c := range costs {
		points[i] = CostPoint{
			Epoch: i,
			Cost:  c,
			Y:     pmath.Normalize(c, min, max),
		}
	}
	current := costs[len(costs)-1]
	return Cost{
		Points:  points,
		Min:     min,
		Max:     max,
		Current: current,
		Label:   fmt.Sprintf("current cost: %s", pmath.FormatN(current, costPrecision)),
	}
}

// Gradient is the schematic weight-space view.
// Direction is atan2(w2, w1) of the current weights and the arrow points opposite to it.
// It is an illustration of where the weights sit, not the analytic gradient of the cost.
type Gradient struct {
	// Position holds the first two weights mapped from [-1,1] to [0,1].
	Position  []float64 `json:"position"`
	Direction float64   `json:"direction"`
	Arrow     []float64 `json:"arrow,omitempty"`
	Label     string    `json:"label,omitempty"`
}

// NewGradient creates the weight-space view.
// The arrow is shown only after at least 2 epochs.
func NewGradient(weights []float64, epochs int) Gradient {
	if epochs == 0 {
		return Gradient{Label: NoGradientData}
	}
	if len(weights) < 2 {
		return Gradient{Label: fmt.Sprintf("weight space needs 2 weights, got %d", len(weights))}
	}
	w1 := weights[0]
	w2 := weights[1]
	g := Gradient{
		Position:  []float64{(w1 + 1) / 2, (w2 + 1) / 2},
		Direction: math.Atan2(w2, w1),
	}
	if epochs >= 2 {
		g.Arrow = []float64{-math.Cos(g.Direction), -math.Sin(g.Direction)}
	}
	return g
}
