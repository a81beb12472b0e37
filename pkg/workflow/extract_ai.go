package workflow

import "strings"

// DefaultProvider is the label of AI nodes whose type names no known provider.
const DefaultProvider = "AI"

// AIConfig is the normalized configuration of a generative model node.
type AIConfig struct {
	StepRef
	Provider      string   `json:"provider"`
	Model         *string  `json:"model"`
	SystemMessage *string  `json:"systemMessage"`
	Prompt        *string  `json:"prompt"`
	Temperature   *float64 `json:"temperature"`
	MaxTokens     *int     `json:"maxTokens"`
}

// providerLabels is checked in order; azure must precede openai.
var providerLabels = []struct {
	match string
	label string
}{
	{"azureopenai", "Azure OpenAI"},
	{"openai", "OpenAI"},
	{"anthropic", "Anthropic"},
	{"gemini", "Google Gemini"},
	{"vertex", "Google Vertex AI"},
	{"mistral", "Mistral AI"},
	{"ollama", "Ollama"},
	{"groq", "Groq"},
	{"cohere", "Cohere"},
	{"huggingface", "Hugging Face"},
	{"deepseek", "DeepSeek"},
	{"openrouter", "OpenRouter"},
	{"bedrock", "AWS Bedrock"},
	{"perplexity", "Perplexity"},
	{"agent", "AI Agent"},
}

var (
	modelFields = []accessor{
		at("model"),
		valueAt("model"),
		valueAt("modelId"),
		at("modelId"),
		at("modelName"),
		at("options", "model"),
	}
	systemMessageFields = []accessor{
		at("options", "systemMessage"),
		at("systemMessage"),
		valueAt("systemMessage"),
		at("options", "system"),
		messageAt(isSystemRole, "messages", "values"),
		messageAt(isSystemRole, "messages", "messageValues"),
		messageAt(isSystemRole, "messages"),
	}
	promptFields = []accessor{
		at("prompt"),
		at("text"),
		valueAt("prompt"),
		valueAt("text"),
		messageAt(isConversationRole, "messages", "values"),
		messageAt(isConversationRole, "messages", "messageValues"),
		messageAt(isConversationRole, "messages"),
		at("chatInput"),
		at("input"),
	}
)

func isSystemRole(role string) bool       { return role == "system" }
func isConversationRole(role string) bool { return role != "system" }

// ProviderLabel maps a node type to a provider display name.
func ProviderLabel(nodeType string) string {
	t := strings.ToLower(nodeType)
	for _, p := range providerLabels {
		if strings.Contains(t, p.match) {
			return p.label
		}
	}
	return DefaultProvider
}

// ExtractAI reads provider, model, system message and prompt from an AI node.
func ExtractAI(node Node) AIConfig {
	params := node.Parameters
	cfg := AIConfig{
		Provider:      ProviderLabel(node.Type),
		Model:         firstOf(params, modelFields...),
		SystemMessage: firstOf(params, systemMessageFields...),
		Prompt:        firstOf(params, promptFields...),
	}
	if v, ok := lookup(params, "options", "temperature"); ok {
		if f, ok := numberValue(v); ok {
			cfg.Temperature = &f
		}
	}
	for _, key := range []string{"maxTokens", "maxTokensToSample", "max_tokens"} {
		v, ok := lookup(params, "options", key)
		if !ok {
			continue
		}
		if f, ok := numberValue(v); ok {
			n := int(f)
			cfg.MaxTokens = &n
			break
		}
	}
	return cfg
}
