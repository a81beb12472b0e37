package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		url      string
		text     string
		workflow string
	}{
		{"url envelope", `{"workflowUrl": "https://x.example/wf.json"}`, "https://x.example/wf.json", "", ""},
		{"body envelope", `{"workflowBody": "nodes: []"}`, "", "nodes: []", ""},
		{"object envelope", `{"workflow": {"nodes": []}}`, "", "", `{"nodes": []}`},
		{"bare document", `{"name": "wf", "nodes": []}`, "", "", `{"name": "wf", "nodes": []}`},
		{"null workflow is bare", `{"workflow": null}`, "", "", `{"workflow": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in WorkflowInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			assert.Equal(t, tt.url, in.WorkflowUrl)
			assert.Equal(t, tt.text, in.WorkflowBody)
			assert.Equal(t, tt.workflow, string(in.Workflow))
			assert.True(t, in.HasContent())
		})
	}
}

func TestWorkflowInput_HasContent(t *testing.T) {
	assert.False(t, (&WorkflowInput{}).HasContent())
	assert.False(t, (&WorkflowInput{WorkflowBody: "  ", Workflow: json.RawMessage("null")}).HasContent())
	assert.True(t, (&WorkflowInput{Workflow: json.RawMessage("{}")}).HasContent())
}

func TestWorkflowVisualizeInput_UnmarshalJSON(t *testing.T) {
	var in WorkflowVisualizeInput
	require.NoError(t, json.Unmarshal([]byte(`{"workflowBody": "nodes: []", "output": " Mermaid "}`), &in))
	assert.Equal(t, "mermaid", in.Output)
	assert.Equal(t, "nodes: []", in.WorkflowBody)

	var bare WorkflowVisualizeInput
	require.NoError(t, json.Unmarshal([]byte(`{"nodes": []}`), &bare))
	assert.Equal(t, "", bare.Output)
	assert.Equal(t, `{"nodes": []}`, string(bare.Workflow))
}
