package llm

import (
	"errors"
	"fmt"

	"universal-scraper/internal/config"
	"universal-scraper/internal/llm/providers"
)

// ErrUnsupportedProvider is returned for provider names the factory does not know
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// LLMFactory creates LLM provider instances
type LLMFactory struct {
	config *config.Config
}

// NewLLMFactory creates a new LLM factory instance
func NewLLMFactory(cfg *config.Config) *LLMFactory {
	return &LLMFactory{
		config: cfg,
	}
}

// CreateProvider creates an LLM provider based on the configuration
func (f *LLMFactory) CreateProvider() (LLMProvider, error) {
	switch f.config.LLM.Provider {
	case "gemini", "":
		return providers.NewGeminiProvider(f.config), nil
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, f.config.LLM.Provider)
	}
}

// GetSupportedProviders returns a list of supported LLM providers
func (f *LLMFactory) GetSupportedProviders() []string {
	return []string{"gemini", "claude"}
}
