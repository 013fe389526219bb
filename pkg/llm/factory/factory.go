package factory

import (
	"fmt"

	"fundsight-be/pkg/llm"
	"fundsight-be/pkg/llm/ollama"
	"fundsight-be/pkg/llm/openai"
)

// NewLLMProvider selects the answer-generation backend from config.
// Implementation choice lives here, not at the call sites.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
