package ai

import (
	"context"
	"fmt"
)

// Summarizer is the interface that all LLM providers must implement.
type Summarizer interface {
	// Summarize generates an abstractive summary of the given article text.
	// maxLength and minLength bound the summary size in words.
	Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// ProviderConfig holds the configuration needed to create an AI provider.
type ProviderConfig struct {
	Provider string // "anthropic" | "openai"
	APIKey   string
	Model    string
}

// NewProvider creates the appropriate provider based on config.
func NewProvider(cfg ProviderConfig) (Summarizer, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
