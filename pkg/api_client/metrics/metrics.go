// Package metrics holds the Prometheus collectors of the workflow API.
package metrics

import (
	"net/http"
	"time"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/workflow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	analyses       *prometheus.CounterVec // status: ok, invalid
	duration       prometheus.Histogram
	steps          *prometheus.CounterVec // category: ai, http, code, generic
	catalogEntries prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workflows",
			Name:      "analyses_total",
			Help:      "Total number of analyzed workflow documents",
		}, []string{"status"}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "workflows",
			Name:      "analysis_duration_seconds",
			Help:      "Workflow analysis duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),

		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "workflows",
			Name:      "steps_total",
			Help:      "Total number of analyzed steps by category",
		}, []string{"category"}),

		catalogEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "workflows",
			Name:      "catalog_entries",
			Help:      "Number of workflows currently held in the catalog",
		}),
	}

	for _, c := range []prometheus.Collector{m.analyses, m.duration, m.steps, m.catalogEntries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveAnalysis records one analysis run.
func (m *Metrics) ObserveAnalysis(a *workflow.Analysis, took time.Duration) {
	if m == nil || a == nil {
		return
	}
	m.duration.Observe(took.Seconds())
	if a.HasError {
		m.analyses.WithLabelValues("invalid").Inc()
		return
	}
	m.analyses.WithLabelValues("ok").Inc()
	m.steps.WithLabelValues(string(workflow.CategoryAI)).Add(float64(a.Summary.AISteps))
	m.steps.WithLabelValues(string(workflow.CategoryHTTP)).Add(float64(a.Summary.HTTPSteps))
	m.steps.WithLabelValues(string(workflow.CategoryCode)).Add(float64(a.Summary.CodeSteps))
	m.steps.WithLabelValues(string(workflow.CategoryGeneric)).Add(float64(a.Summary.GenericSteps))
}

func (m *Metrics) SetCatalogEntries(n int) {
	if m == nil {
		return
	}
	m.catalogEntries.Set(float64(n))
}

// Handler exposes the gathered metrics in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
