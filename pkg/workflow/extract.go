package workflow

// StepRef identifies the ordered step an extracted configuration belongs to.
type StepRef struct {
	StepNumber int    `json:"stepNumber"`
	NodeID     string `json:"nodeId"`
	NodeName   string `json:"nodeName"`
	NodeType   string `json:"nodeType"`
}

// Config is a category specific, display ready configuration. It is implemented by
// AIConfig, HTTPConfig and CodeConfig only.
type Config interface {
	Category() Category
	Ref() StepRef
	isConfig()
}

func (AIConfig) Category() Category   { return CategoryAI }
func (HTTPConfig) Category() Category { return CategoryHTTP }
func (CodeConfig) Category() Category { return CategoryCode }

func (c AIConfig) Ref() StepRef   { return c.StepRef }
func (c HTTPConfig) Ref() StepRef { return c.StepRef }
func (c CodeConfig) Ref() StepRef { return c.StepRef }

func (AIConfig) isConfig()   {}
func (HTTPConfig) isConfig() {}
func (CodeConfig) isConfig() {}

// Extract returns the configuration for a step of the given category, or nil for generic
// steps.
func Extract(step OrderedStep, category Category) Config {
	ref := StepRef{
		StepNumber: step.StepNumber,
		NodeID:     step.ID,
		NodeName:   step.Name,
		NodeType:   step.Type,
	}
	switch category {
	case CategoryAI:
		cfg := ExtractAI(step.Node)
		cfg.StepRef = ref
		return cfg
	case CategoryHTTP:
		cfg := ExtractHTTP(step.Node)
		cfg.StepRef = ref
		return cfg
	case CategoryCode:
		cfg := ExtractCode(step.Node)
		cfg.StepRef = ref
		return cfg
	default:
		return nil
	}
}
