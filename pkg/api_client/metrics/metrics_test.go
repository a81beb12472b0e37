package metrics

import (
	"testing"
	"time"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/workflow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAnalysis(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.ObserveAnalysis(&workflow.Analysis{Summary: workflow.Summary{TotalSteps: 3, AISteps: 1, HTTPSteps: 2}}, time.Millisecond)
	m.ObserveAnalysis(&workflow.Analysis{HasError: true}, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("invalid")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.steps.WithLabelValues("http")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.steps.WithLabelValues("ai")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis(&workflow.Analysis{}, time.Second)
		m.SetCatalogEntries(4)
	})
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestSetCatalogEntries(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	m.SetCatalogEntries(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.catalogEntries))
}
