package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-scraper/internal/config"
)

func TestFactoryCreatesConfiguredProvider(t *testing.T) {
	cfg := config.Default()

	for _, name := range []string{"gemini", "claude"} {
		cfg.LLM.Provider = name
		provider, err := NewLLMFactory(cfg).CreateProvider()
		require.NoError(t, err)
		assert.Equal(t, name, provider.GetProviderName())
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "mystery"

	_, err := NewLLMFactory(cfg).CreateProvider()
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestManagerWithoutAPIKeyIsUnhealthy(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = ""

	manager := NewManager(cfg)
	require.NoError(t, manager.Start(context.Background()))
	defer manager.Stop()

	assert.False(t, manager.IsHealthy())
	assert.Equal(t, "gemini", manager.GetProviderName())

	_, err := manager.Generate(context.Background(), "", "prompt")
	assert.Error(t, err)
	assert.Error(t, manager.CheckHealth(context.Background()))
}

func TestManagerWithAPIKeyIsHealthy(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "claude"
	cfg.LLM.APIKey = "test-key"

	manager := NewManager(cfg)
	require.NoError(t, manager.Start(context.Background()))

	assert.True(t, manager.IsHealthy())
	require.NoError(t, manager.Stop())
	assert.False(t, manager.IsHealthy())
	assert.Equal(t, "none", manager.GetProviderName())
}

func TestGenerateBeforeStart(t *testing.T) {
	_, err := NewManager(config.Default()).Generate(context.Background(), "", "prompt")
	assert.Error(t, err)
}
