package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"universal-scraper/internal/config"
	"universal-scraper/internal/logging"
	"universal-scraper/internal/logging/types"
)

const claudeDefaultModel = "claude-3-7-sonnet-latest"

// ClaudeProvider implements the LLM provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger types.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Generate sends the prompt as a single user message and returns the first text block
func (cp *ClaudeProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	startTime := time.Now()
	model = cp.resolveModel(model)

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	var responseText string
	for _, content := range response.Content {
		if text := content.AsText().Text; text != "" {
			responseText = text
			break
		}
	}

	cp.logger.Debug("Claude response received", map[string]interface{}{
		"model":           model,
		"prompt_length":   len(prompt),
		"response_length": len(responseText),
		"processing_time": time.Since(startTime).String(),
	})

	return responseText, nil
}

// resolveModel keeps Gemini defaults from leaking into Anthropic requests
func (cp *ClaudeProvider) resolveModel(model string) string {
	if model == "" {
		model = cp.config.LLM.Model
	}
	if model == "" || !strings.HasPrefix(model, "claude") {
		return claudeDefaultModel
	}
	return model
}

// IsHealthy checks that an API key is configured
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}
	return nil
}

// GetProviderName returns the name of the LLM provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
