package scraper

import (
	"context"

	"universal-scraper/pkg/models"
)

// Fetcher loads a page and returns its final markup and image sources
type Fetcher interface {
	// Fetch renders url and returns the page. Errors are fatal for the run.
	Fetch(ctx context.Context, url string) (*models.Page, error)

	// Name returns the engine name
	Name() string
}

// FetcherFactory creates fetchers based on engine type
type FetcherFactory interface {
	// CreateFetcher creates a new fetcher for the given engine
	CreateFetcher(engine string) (Fetcher, error)

	// GetSupportedEngines returns a list of supported engine types
	GetSupportedEngines() []string
}
