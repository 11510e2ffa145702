package metrics

import (
	"fmt"

	"github.com/drakos74/perceptron/internal/trainer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Metrics exports the training progress.
// It observes the trainer and must be registered before it is scraped.
type Metrics struct {
	prometheus Prometheus
}

// New creates new training metrics.
func New() *Metrics {
	return &Metrics{
		prometheus: NewPrometheusMetrics(),
	}
}

// Register registers all collectors with the given registerer.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	for _, collector := range m.prometheus.Collectors() {
		if err := registerer.Register(collector); err != nil {
			return fmt.Errorf("could not register collector: %w", err)
		}
	}
	return nil
}

// Observe updates the metrics for the given training event.
func (m *Metrics) Observe(event trainer.Event) {
	switch event.Type {
	case trainer.EpochEvent:
		m.prometheus.Epochs.WithLabelValues(event.State.Settings.Activation.String()).Inc()
		m.prometheus.Cost.Set(event.Cost)
	case trainer.ResetEvent:
		m.prometheus.Cost.Set(0)
	case trainer.StartedEvent, trainer.FinishedEvent, trainer.CancelledEvent:
		m.prometheus.Sessions.WithLabelValues(string(event.Type)).Inc()
	}
	m.neuron(event.State)
}

func (m *Metrics) neuron(state trainer.State) {
	if state.Neuron == nil {
		return
	}
	for i, w := range state.Neuron.Weights() {
		m.prometheus.Weights.WithLabelValues(fmt.Sprintf("x%d", i+1)).Set(w)
	}
	m.prometheus.Bias.Set(state.Neuron.Bias())
	if len(state.Dataset) == 0 {
		return
	}
	accuracy, err := state.Neuron.Accuracy(state.Dataset)
	if err != nil {
		log.Warn().Err(err).Msg("could not compute accuracy")
		return
	}
	m.prometheus.Accuracy.Set(accuracy)
}
