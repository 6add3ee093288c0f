package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-scraper/internal/config"
)

func TestCreateFetcherByName(t *testing.T) {
	factory := NewFetcherFactory(config.Default())

	for _, engine := range []string{"rod", "chromedp"} {
		fetcher, err := factory.CreateFetcher(engine)
		require.NoError(t, err)
		assert.Equal(t, engine, fetcher.Name())
	}
}

func TestCreateFetcherDefaultsToConfiguredEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Scraper.Engine = "chromedp"

	fetcher, err := NewFetcherFactory(cfg).CreateFetcher("")
	require.NoError(t, err)
	assert.Equal(t, "chromedp", fetcher.Name())
}

func TestCreateFetcherFirecrawlWithKey(t *testing.T) {
	cfg := config.Default()
	cfg.Firecrawl.APIKey = "fc-test"

	fetcher, err := NewFetcherFactory(cfg).CreateFetcher("firecrawl")
	require.NoError(t, err)
	assert.Equal(t, "firecrawl", fetcher.Name())
}

func TestCreateFetcherUnknownEngine(t *testing.T) {
	_, err := NewFetcherFactory(config.Default()).CreateFetcher("telepathy")
	assert.ErrorIs(t, err, ErrUnsupportedEngine)
}

func TestSupportedEngines(t *testing.T) {
	assert.ElementsMatch(t, []string{"rod", "chromedp", "firecrawl"}, NewFetcherFactory(config.Default()).GetSupportedEngines())
}
