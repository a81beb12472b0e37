package models

import (
	"encoding/json"
	"strings"
)

// WorkflowInput representeert een JSON envelope voor het workflow document
// - WorkflowUrl: URL waar het document (JSON of YAML) opgehaald kan worden
// - WorkflowBody: het document als string (JSON of YAML)
// - Workflow: het document als JSON object
type WorkflowInput struct {
	WorkflowUrl  string          `json:"workflowUrl,omitempty" example:"https://example.com/workflow.json"`
	WorkflowBody string          `json:"workflowBody,omitempty"`
	Workflow     json.RawMessage `json:"workflow,omitempty"`
}

type workflowEnvelope struct {
	WorkflowUrl  string          `json:"workflowUrl"`
	WorkflowBody string          `json:"workflowBody"`
	Workflow     json.RawMessage `json:"workflow"`
	Output       string          `json:"output"`
}

func (e workflowEnvelope) empty() bool {
	return strings.TrimSpace(e.WorkflowUrl) == "" && strings.TrimSpace(e.WorkflowBody) == "" && !hasContent(e.Workflow)
}

func (b *WorkflowInput) UnmarshalJSON(p []byte) error {
	// 1) Probeer eerst envelope {workflowUrl, workflowBody, workflow}
	var env workflowEnvelope
	if err := json.Unmarshal(p, &env); err == nil && !env.empty() {
		b.WorkflowUrl = env.WorkflowUrl
		b.WorkflowBody = env.WorkflowBody
		b.Workflow = env.Workflow
		return nil
	}

	// 2) Anders: beschouw de hele body als het workflow document zelf
	b.Workflow = append(json.RawMessage(nil), p...)
	return nil
}

// WorkflowVisualizeInput is de payload voor het visualisatie endpoint.
type WorkflowVisualizeInput struct {
	WorkflowInput
	Output string `json:"output,omitempty" example:"both"`
}

func (b *WorkflowVisualizeInput) UnmarshalJSON(p []byte) error {
	var env workflowEnvelope
	if err := json.Unmarshal(p, &env); err == nil {
		b.Output = strings.ToLower(strings.TrimSpace(env.Output))
	}
	return b.WorkflowInput.UnmarshalJSON(p)
}

func hasContent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s != "" && s != "null"
}

// HasContent reports whether the input carries a URL, a body string or an inline document.
func (b *WorkflowInput) HasContent() bool {
	return strings.TrimSpace(b.WorkflowUrl) != "" || strings.TrimSpace(b.WorkflowBody) != "" || hasContent(b.Workflow)
}
