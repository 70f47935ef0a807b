package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the forecast service.
type Metrics struct {
	Predictions        *prometheus.CounterVec // labels: outcome={success,failure}
	Severity           *prometheus.CounterVec // labels: band
	PredictionDuration prometheus.Histogram

	ModelLoaded prometheus.Gauge
	ModelTrees  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all service metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()

	reg.MustRegister(
		m.Predictions,
		m.Severity,
		m.PredictionDuration,
		m.ModelLoaded,
		m.ModelTrees,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm25",
			Name:      "predictions_total",
			Help:      "Form submissions by prediction outcome.",
		}, []string{"outcome"}),
		Severity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm25",
			Name:      "severity_total",
			Help:      "Successful predictions by air-quality band.",
		}, []string{"band"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pm25",
			Name:      "prediction_duration_seconds",
			Help:      "Prediction latency per submission, successful or failed.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pm25",
			Name:      "model_loaded",
			Help:      "1 once the regressor artifact has been loaded, 0 otherwise.",
		}),
		ModelTrees: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pm25",
			Name:      "model_trees",
			Help:      "Number of trees in the loaded regressor ensemble.",
		}),
	}
}
