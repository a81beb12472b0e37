package workflow

// Analyzer runs ingest, ordering, classification, extraction and aggregation over one
// document. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	classifier *Classifier
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClassifier replaces the default classification rules.
func WithClassifier(c *Classifier) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.classifier = c
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{classifier: defaultClassifier()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classifier returns the classifier in use.
func (a *Analyzer) Classifier() *Classifier { return a.classifier }

// Analyze turns a workflow document into an Analysis. Structural problems are reported with
// HasError and empty collections; Analyze itself never fails.
func (a *Analyzer) Analyze(input any) *Analysis {
	res := Ingest(input)
	if res.HasError {
		out := emptyAnalysis()
		out.HasError = true
		if res.Err != nil {
			out.Error = res.Err.Error()
		}
		return out
	}
	return a.AnalyzeGraph(res.Graph)
}

// AnalyzeGraph analyzes an already ingested graph.
func (a *Analyzer) AnalyzeGraph(g *Graph) *Analysis {
	order := ResolveOrder(g)
	records := make([]Record, 0, len(order.Steps))
	for _, step := range order.Steps {
		category := a.classifier.Classify(step.Type)
		records = append(records, Record{
			Step:     step,
			Category: category,
			Config:   Extract(step, category),
		})
	}

	out := Aggregate(records)
	out.Name = g.Name
	out.Tags = g.Tags
	if edges := g.Edges(); len(edges) > 0 {
		out.Edges = edges
	}
	out.Truncated = order.Truncated
	return out
}

// Analyze runs a default Analyzer over input.
func Analyze(input any) *Analysis {
	return New().Analyze(input)
}
