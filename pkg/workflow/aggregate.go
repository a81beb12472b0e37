package workflow

// Step is an ordered step together with its category.
type Step struct {
	OrderedStep
	Category Category `json:"category"`
}

// Record is the per-step input of Aggregate. Config is nil for generic steps.
type Record struct {
	Step     OrderedStep
	Category Category
	Config   Config
}

// Summary holds the counts shown next to an analysis.
type Summary struct {
	TotalSteps   int `json:"totalSteps"`
	AISteps      int `json:"aiSteps"`
	HTTPSteps    int `json:"httpSteps"`
	CodeSteps    int `json:"codeSteps"`
	GenericSteps int `json:"genericSteps"`
	Triggers     int `json:"triggers"`
	Disconnected int `json:"disconnected"`
}

// Analysis is the complete result set of one analyzer run.
type Analysis struct {
	ID        string       `json:"id,omitempty"`
	HasError  bool         `json:"hasError"`
	Error     string       `json:"error,omitempty"`
	Name      string       `json:"name,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
	Steps     []Step       `json:"steps"`
	AI        []AIConfig   `json:"ai"`
	HTTP      []HTTPConfig `json:"http"`
	Code      []CodeConfig `json:"code"`
	Edges     []Edge       `json:"edges"`
	Summary   Summary      `json:"summary"`
	Truncated bool         `json:"truncated"`
}

func emptyAnalysis() *Analysis {
	return &Analysis{
		Steps: []Step{},
		AI:    []AIConfig{},
		HTTP:  []HTTPConfig{},
		Code:  []CodeConfig{},
		Edges: []Edge{},
	}
}

// Aggregate groups records by category and computes the summary counts. Records are kept in
// the order given; generic records only appear in Steps.
func Aggregate(records []Record) *Analysis {
	a := emptyAnalysis()
	for _, r := range records {
		category := r.Category
		switch cfg := r.Config.(type) {
		case AIConfig:
			a.AI = append(a.AI, cfg)
			a.Summary.AISteps++
		case HTTPConfig:
			a.HTTP = append(a.HTTP, cfg)
			a.Summary.HTTPSteps++
		case CodeConfig:
			a.Code = append(a.Code, cfg)
			a.Summary.CodeSteps++
		default:
			category = CategoryGeneric
			a.Summary.GenericSteps++
		}
		if r.Step.IsTrigger {
			a.Summary.Triggers++
		}
		if r.Step.IsDisconnected {
			a.Summary.Disconnected++
		}
		a.Steps = append(a.Steps, Step{OrderedStep: r.Step, Category: category})
	}
	a.Summary.TotalSteps = len(a.Steps)
	return a
}
