package scraper

import (
	"errors"
	"fmt"

	"universal-scraper/internal/config"
	"universal-scraper/internal/scraper/engines/cdp"
	"universal-scraper/internal/scraper/engines/firecrawl"
	"universal-scraper/internal/scraper/engines/headed"
)

// ErrUnsupportedEngine is returned for engine names the factory does not know
var ErrUnsupportedEngine = errors.New("unsupported scraping engine")

// DefaultFetcherFactory implements FetcherFactory
type DefaultFetcherFactory struct {
	config *config.Config
}

// NewFetcherFactory creates a new fetcher factory
func NewFetcherFactory(cfg *config.Config) FetcherFactory {
	return &DefaultFetcherFactory{
		config: cfg,
	}
}

// CreateFetcher creates a new fetcher for the given engine; empty selects the configured default
func (f *DefaultFetcherFactory) CreateFetcher(engine string) (Fetcher, error) {
	if engine == "" {
		engine = f.config.Scraper.Engine
	}

	switch engine {
	case "rod", "headed":
		return headed.NewRodFetcher(f.config), nil
	case "chromedp":
		return cdp.NewChromedpFetcher(f.config), nil
	case "firecrawl":
		fetcher, err := firecrawl.NewFirecrawlFetcher(f.config)
		if err != nil {
			return nil, fmt.Errorf("failed to create firecrawl fetcher: %w", err)
		}
		return fetcher, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, engine)
	}
}

// GetSupportedEngines returns a list of supported engine types
func (f *DefaultFetcherFactory) GetSupportedEngines() []string {
	return []string{"rod", "chromedp", "firecrawl"}
}
