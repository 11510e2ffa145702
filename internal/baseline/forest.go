package baseline

import (
	"errors"
	"fmt"

	"github.com/drakos74/perceptron/internal/model"
	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
)

// DefaultTrees is the size of the reference forest.
const DefaultTrees = 100

// NotTrainedErr signals a prediction from a forest that has not been trained.
var NotTrainedErr = errors.New("forest not trained")

// Forest is a random forest classifier used as a reference for the neuron accuracy.
type Forest struct {
	trees  int
	forest *randomforest.Forest
}

// NewForest creates a forest of n trees.
func NewForest(n int) *Forest {
	if n <= 0 {
		n = DefaultTrees
	}
	return &Forest{
		trees: n,
	}
}

// Train trains the forest on the dataset and returns the importance of each input.
func (f *Forest) Train(ds model.Dataset) ([]float64, error) {
	if len(ds) == 0 {
		return nil, model.EmptyDatasetErr
	}
	xData := make([][]float64, len(ds))
	yData := make([]int, len(ds))
	for i, example := range ds {
		xData[i] = example.Inputs()
		yData[i] = example.Label
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: xData, Class: yData}
	forest.Train(f.trees)
	f.forest = forest
	log.Debug().
		Int("trees", f.trees).
		Int("examples", len(ds)).
		Floats64("importance", forest.FeatureImportance).
		Msg("forest trained")
	return forest.FeatureImportance, nil
}

// Classify returns the label with the most votes.
func (f *Forest) Classify(inputs []float64) (int, error) {
	if f.forest == nil {
		return 0, NotTrainedErr
	}
	if len(inputs) != len(f.forest.Data.X[0]) {
		return 0, fmt.Errorf("%d inputs for forest of size %d: %w", len(inputs), len(f.forest.Data.X[0]), model.DimensionMismatchErr)
	}
	votes := f.forest.Vote(inputs)
	var label int
	for i, v := range votes {
		if v > votes[label] {
			label = i
		}
	}
	return label, nil
}

// Accuracy returns the fraction of the examples the forest classifies correctly.
func (f *Forest) Accuracy(ds model.Dataset) (float64, error) {
	if len(ds) == 0 {
		return 0, model.EmptyDatasetErr
	}
	var correct int
	for _, example := range ds {
		label, err := f.Classify(example.Inputs())
		if err != nil {
			return 0, err
		}
		if label == example.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(ds)), nil
}
