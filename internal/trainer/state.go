package trainer

import (
	"time"

	"github.com/drakos74/perceptron/internal/buffer"
	"github.com/drakos74/perceptron/internal/model"
	"github.com/drakos74/perceptron/internal/neuron"
	"github.com/drakos74/perceptron/internal/view"
)

// Session is the progress of a training run.
type Session struct {
	ID        string    `json:"id"`
	Iteration int       `json:"iteration"`
	Total     int       `json:"total"`
	Running   bool      `json:"running"`
	Started   time.Time `json:"started"`
}

// State is everything a training run touches.
// It is owned by a single Trainer and must only be read from the goroutine driving it.
type State struct {
	Neuron   *neuron.Neuron
	Dataset  model.Dataset
	History  *buffer.History
	Session  Session
	Settings Settings
}

// Input prepares the state for rendering.
func (s State) Input() view.Input {
	in := view.Input{
		Neuron:  s.Neuron,
		Dataset: s.Dataset,
		Costs:   s.History.Get(),
		Controls: view.Controls{
			LearningRate: s.Settings.LearningRate,
			Activation:   s.Settings.Activation,
			Iterations:   s.Settings.Iterations,
		},
		Progress: view.Progress{
			Session:   s.Session.ID,
			Iteration: s.Session.Iteration,
			Total:     s.Session.Total,
			Running:   s.Session.Running,
		},
	}
	if trend, err := s.History.Trend(); err == nil {
		in.Trend = &trend
	}
	return in
}
