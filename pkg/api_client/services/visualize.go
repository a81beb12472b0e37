package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/workflow"
)

var mermaidIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func sanitizeMermaidID(base string, offset int, used map[string]struct{}) string {
	candidate := strings.TrimSpace(base)
	if candidate == "" {
		candidate = fmt.Sprintf("step_%d", offset)
	}
	candidate = strings.ToLower(candidate)
	candidate = mermaidIDSanitizer.ReplaceAllString(candidate, "_")
	candidate = strings.Trim(candidate, "_")
	if candidate == "" {
		candidate = fmt.Sprintf("step_%d", offset)
	}
	if candidate[0] >= '0' && candidate[0] <= '9' {
		candidate = "s_" + candidate
	}
	// reserved by the mermaid parser
	if candidate == "end" || candidate == "graph" || candidate == "subgraph" {
		candidate = "n_" + candidate
	}
	original := candidate
	suffix := 2
	for {
		if _, exists := used[candidate]; !exists {
			used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", original, suffix)
		suffix++
	}
}

func escapeMermaidText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\"", "#quot;")
}

// mermaidShape wraps a quoted label in the node shape of its category.
func mermaidShape(category workflow.Category, label string) string {
	switch category {
	case workflow.CategoryAI:
		return "{{\"" + label + "\"}}"
	case workflow.CategoryHTTP:
		return "([\"" + label + "\"])"
	case workflow.CategoryCode:
		return "[[\"" + label + "\"]]"
	default:
		return "[\"" + label + "\"]"
	}
}

func buildMermaid(a *workflow.Analysis) string {
	var b strings.Builder
	if a.Name != "" {
		b.WriteString("---\n")
		b.WriteString("title: " + escapeMermaidText(a.Name) + "\n")
		b.WriteString("---\n")
	}
	b.WriteString("graph LR\n")

	used := make(map[string]struct{})
	ids := make(map[string]string, len(a.Steps))
	var disconnected []string
	for i, step := range a.Steps {
		nodeID := sanitizeMermaidID(step.Name, i, used)
		ids[step.Name] = nodeID
		label := fmt.Sprintf("%d. %s", step.StepNumber, stepTitle(step))
		b.WriteString(fmt.Sprintf("%s%s\n", nodeID, mermaidShape(step.Category, escapeMermaidText(label))))
		if step.IsDisconnected {
			disconnected = append(disconnected, nodeID)
		}
	}

	for _, e := range a.Edges {
		from, okFrom := ids[e.From]
		to, okTo := ids[e.To]
		if !okFrom || !okTo {
			continue
		}
		switch {
		case e.Port != workflow.PortMain:
			b.WriteString(fmt.Sprintf("%s -.->|%s| %s\n", from, escapeMermaidText(e.Port), to))
		case e.OutputIndex > 0:
			b.WriteString(fmt.Sprintf("%s -->|%d| %s\n", from, e.OutputIndex, to))
		default:
			b.WriteString(fmt.Sprintf("%s --> %s\n", from, to))
		}
	}

	if len(disconnected) > 0 {
		b.WriteString("classDef disconnected stroke-dasharray: 5 5,opacity:0.6\n")
		b.WriteString("class " + strings.Join(disconnected, ",") + " disconnected\n")
	}
	return b.String()
}

func buildMarkdown(a *workflow.Analysis) string {
	var b strings.Builder

	title := a.Name
	if title == "" {
		title = "Workflow"
	}
	b.WriteString("## " + title + "\n\n")
	if len(a.Tags) > 0 {
		b.WriteString("Tags: " + strings.Join(a.Tags, ", ") + "\n\n")
	}

	s := a.Summary
	b.WriteString("| Stappen | AI | HTTP | Code | Overig | Niet verbonden |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	b.WriteString(fmt.Sprintf("| %d | %d | %d | %d | %d | %d |\n\n",
		s.TotalSteps, s.AISteps, s.HTTPSteps, s.CodeSteps, s.GenericSteps, s.Disconnected))

	aiByID := make(map[string]workflow.AIConfig, len(a.AI))
	for _, c := range a.AI {
		aiByID[c.NodeID] = c
	}
	httpByID := make(map[string]workflow.HTTPConfig, len(a.HTTP))
	for _, c := range a.HTTP {
		httpByID[c.NodeID] = c
	}
	codeByID := make(map[string]workflow.CodeConfig, len(a.Code))
	for _, c := range a.Code {
		codeByID[c.NodeID] = c
	}

	for _, step := range a.Steps {
		b.WriteString(fmt.Sprintf("### %d: %s\n\n", step.StepNumber, stepTitle(step)))
		if step.Type != "" {
			b.WriteString(fmt.Sprintf("- Type: `%s`\n", step.Type))
		}
		b.WriteString("- Category: " + string(step.Category) + "\n")
		if step.IsTrigger {
			b.WriteString("- Trigger\n")
		}
		if step.IsDisconnected {
			b.WriteString("- Not connected\n")
		}

		switch step.Category {
		case workflow.CategoryAI:
			writeAIDetails(&b, aiByID[step.ID])
		case workflow.CategoryHTTP:
			writeHTTPDetails(&b, httpByID[step.ID])
		case workflow.CategoryCode:
			writeCodeDetails(&b, codeByID[step.ID])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeAIDetails(b *strings.Builder, c workflow.AIConfig) {
	b.WriteString("- Provider: " + c.Provider + "\n")
	if c.Model != nil {
		b.WriteString(fmt.Sprintf("- Model: `%s`\n", *c.Model))
	}
	if c.Temperature != nil {
		b.WriteString(fmt.Sprintf("- Temperature: %g\n", *c.Temperature))
	}
	if c.MaxTokens != nil {
		b.WriteString(fmt.Sprintf("- Max tokens: %d\n", *c.MaxTokens))
	}
	if c.SystemMessage != nil {
		b.WriteString("\nSystem message:\n\n```text\n" + *c.SystemMessage + "\n```\n")
	}
	if c.Prompt != nil {
		b.WriteString("\nPrompt:\n\n```text\n" + *c.Prompt + "\n```\n")
	}
}

func writeHTTPDetails(b *strings.Builder, c workflow.HTTPConfig) {
	b.WriteString(fmt.Sprintf("- Request: `%s %s`\n", c.Method, c.URL))
	if c.Authentication != nil {
		b.WriteString("- Authentication: " + *c.Authentication + "\n")
	}
	b.WriteString("\n```bash\n" + c.CurlCommand + "\n```\n")
}

func writeCodeDetails(b *strings.Builder, c workflow.CodeConfig) {
	b.WriteString("- Language: " + c.Language + "\n")
	b.WriteString(fmt.Sprintf("- Lines: %d\n", c.LineCount))
	b.WriteString(fmt.Sprintf("- Complexity: %s (%d)\n", c.Complexity, c.Score))
	if len(c.FunctionNames) > 0 {
		b.WriteString("- Functions: `" + strings.Join(c.FunctionNames, "`, `") + "`\n")
	}
	if c.Source != nil {
		b.WriteString("\n```" + c.Language + "\n" + *c.Source + "\n```\n")
	}
}

func stepTitle(step workflow.Step) string {
	if step.Name != "" {
		return step.Name
	}
	if step.ID != "" {
		return step.ID
	}
	return "Stap"
}
