package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/metrics"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/workflow"
	"github.com/google/uuid"
)

// WorkflowService analyseert en visualiseert workflow documenten.
type WorkflowService struct {
	analyzer *workflow.Analyzer
	metrics  *metrics.Metrics
}

// NewWorkflowService creates a new instance of the workflow service. Both arguments may be nil.
func NewWorkflowService(analyzer *workflow.Analyzer, m *metrics.Metrics) *WorkflowService {
	if analyzer == nil {
		analyzer = workflow.New()
	}
	return &WorkflowService{analyzer: analyzer, metrics: m}
}

// Analyze runs the analyzer over a JSON or YAML document. Structural problems are part of the
// returned analysis (HasError); only empty input is an error.
func (s *WorkflowService) Analyze(doc []byte) (*workflow.Analysis, error) {
	if strings.TrimSpace(string(doc)) == "" {
		return nil, ErrEmptyWorkflow
	}
	start := time.Now()
	a := s.analyzer.Analyze(doc)
	took := time.Since(start)
	a.ID = uuid.New().String()

	s.metrics.ObserveAnalysis(a, took)
	if a.HasError {
		log.Printf("[analyze] id=%s invalid: %s", a.ID, a.Error)
		return a, nil
	}
	log.Printf("[analyze] id=%s workflow=%q steps=%d ai=%d http=%d code=%d disconnected=%d took=%s",
		a.ID, a.Name, a.Summary.TotalSteps, a.Summary.AISteps, a.Summary.HTTPSteps, a.Summary.CodeSteps,
		a.Summary.Disconnected, took)
	return a, nil
}

// Visualize converts a workflow document into markdown and mermaid output.
func (s *WorkflowService) Visualize(doc []byte) (string, string, error) {
	a, err := s.Analyze(doc)
	if err != nil {
		return "", "", err
	}
	if a.HasError {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidWorkflow, a.Error)
	}
	return buildMarkdown(a), buildMermaid(a), nil
}
