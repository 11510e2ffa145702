package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "perceptron"

// Prometheus holds the training collectors.
type Prometheus struct {
	Epochs   *prometheus.CounterVec
	Sessions *prometheus.CounterVec
	Cost     prometheus.Gauge
	Accuracy prometheus.Gauge
	Weights  *prometheus.GaugeVec
	Bias     prometheus.Gauge
}

// NewPrometheusMetrics creates the training collectors.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Epochs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "epochs_total",
				Help:      "Number of training epochs.",
			}, []string{"activation"}),
		Sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_total",
				Help:      "Training session lifecycle events.",
			}, []string{"event"}),
		Cost: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cost",
				Help:      "Mean squared error of the last epoch.",
			}),
		Accuracy: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "accuracy",
				Help:      "Fraction of the dataset classified correctly.",
			}),
		Weights: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "weight",
				Help:      "Current neuron weights.",
			}, []string{"input"}),
		Bias: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "bias",
				Help:      "Current neuron bias.",
			}),
	}
}

// Collectors returns all collectors for registration.
func (p Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.Epochs,
		p.Sessions,
		p.Cost,
		p.Accuracy,
		p.Weights,
		p.Bias,
	}
}
