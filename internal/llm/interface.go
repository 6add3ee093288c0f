package llm

import (
	"context"
)

// LLMProvider defines the interface for LLM providers
type LLMProvider interface {
	// Generate sends a single-turn prompt and returns the model's text reply.
	// An empty model selects the provider's configured default.
	Generate(ctx context.Context, model, prompt string) (string, error)

	// IsHealthy checks if the LLM provider is configured and usable
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the LLM provider
	GetProviderName() string
}

// Generator is the narrow view the extraction engine needs
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}
