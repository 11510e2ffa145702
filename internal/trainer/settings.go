package trainer

import (
	"errors"
	"fmt"

	"github.com/drakos74/perceptron/internal/model"
	"github.com/drakos74/perceptron/internal/neuron"
)

// DefaultIterations is the number of epochs of a training session.
const DefaultIterations = 100

// InvalidSettingsErr signals a configuration the trainer cannot run with.
var InvalidSettingsErr = errors.New("invalid settings")

// Settings are the neuron and session parameters set by the control layer.
type Settings struct {
	LearningRate float64          `json:"learning_rate"`
	Activation   model.Activation `json:"activation"`
	Iterations   int              `json:"iterations"`
}

// DefaultSettings returns the settings of a new trainer.
func DefaultSettings() Settings {
	return Settings{
		LearningRate: neuron.DefaultRate,
		Activation:   model.Sigmoid,
		Iterations:   DefaultIterations,
	}
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v: %w", s.LearningRate, InvalidSettingsErr)
	}
	if s.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d: %w", s.Iterations, InvalidSettingsErr)
	}
	return nil
}
