package providers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/genai"

	"universal-scraper/internal/config"
	"universal-scraper/internal/logging"
	"universal-scraper/internal/logging/types"
)

const geminiDefaultModel = "gemini-1.5-flash"

// GeminiProvider implements the LLM provider interface using Google's Gemini API
type GeminiProvider struct {
	config *config.Config
	logger types.Logger

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGeminiProvider creates a new Gemini provider; the client is built on first use
func NewGeminiProvider(cfg *config.Config) *GeminiProvider {
	return &GeminiProvider{
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

func (gp *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	gp.once.Do(func() {
		gp.client, gp.clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  gp.config.LLM.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return gp.client, gp.clientErr
}

// Generate sends the prompt as a single text turn and returns the concatenated reply
func (gp *GeminiProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	startTime := time.Now()

	client, err := gp.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = gp.config.LLM.Model
	}
	if model == "" {
		model = geminiDefaultModel
	}

	temperature := gp.config.LLM.Temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if gp.config.LLM.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(gp.config.LLM.MaxTokens)
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}

	text := resp.Text()

	gp.logger.Debug("Gemini response received", map[string]interface{}{
		"model":           model,
		"prompt_length":   len(prompt),
		"response_length": len(text),
		"processing_time": time.Since(startTime).String(),
	})

	return text, nil
}

// IsHealthy checks that an API key is configured
func (gp *GeminiProvider) IsHealthy(ctx context.Context) error {
	if gp.config.LLM.APIKey == "" {
		return fmt.Errorf("Gemini API key not configured - set LLM_API_KEY environment variable")
	}
	return nil
}

// GetProviderName returns the name of the LLM provider
func (gp *GeminiProvider) GetProviderName() string {
	return "gemini"
}
