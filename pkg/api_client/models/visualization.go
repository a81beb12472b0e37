package models

// WorkflowVisualization holds the rendered Markdown and Mermaid snippets.
type WorkflowVisualization struct {
	Markdown string `json:"markdown,omitempty"`
	Mermaid  string `json:"mermaid,omitempty"`
}
