package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a narrative generator provider by name.
// An empty provider name returns nil: generation disabled, the
// pipeline still extracts, matches, and evaluates.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
