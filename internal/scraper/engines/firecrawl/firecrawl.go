package firecrawl

import (
	"context"
	"fmt"
	"time"

	"github.com/mendableai/firecrawl-go"

	"universal-scraper/internal/config"
	"universal-scraper/internal/logging"
	"universal-scraper/internal/logging/types"
	"universal-scraper/internal/processors"
	"universal-scraper/pkg/models"
)

// FirecrawlFetcher implements the Fetcher interface using the Firecrawl API.
// The remote side renders the page, so there is no local scroll or settle step.
type FirecrawlFetcher struct {
	config *config.Config
	app    *firecrawl.FirecrawlApp
	logger types.Logger
}

// NewFirecrawlFetcher creates a new Firecrawl fetcher; an API key is required
func NewFirecrawlFetcher(cfg *config.Config) (*FirecrawlFetcher, error) {
	logger := logging.GetGlobalLogger().WithField("engine", "firecrawl")

	app, err := firecrawl.NewFirecrawlApp(
		cfg.Firecrawl.APIKey,
		cfg.Firecrawl.APIURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firecrawl: %w", err)
	}

	logger.Debug("Firecrawl fetcher initialized", map[string]interface{}{
		"api_url": cfg.Firecrawl.APIURL,
	})

	return &FirecrawlFetcher{
		config: cfg,
		app:    app,
		logger: logger,
	}, nil
}

type scrapeResult struct {
	doc *firecrawl.FirecrawlDocument
	err error
}

// Fetch asks Firecrawl for the rendered HTML of url. One attempt, no retries.
func (f *FirecrawlFetcher) Fetch(ctx context.Context, url string) (*models.Page, error) {
	startTime := time.Now()

	f.logger.Info("Fetching page", map[string]interface{}{
		"url": url,
	})

	ctx, cancel := context.WithTimeout(ctx, f.config.Scraper.PageTimeout)
	defer cancel()

	// the SDK call takes no context; buffered so the goroutine never leaks
	done := make(chan scrapeResult, 1)
	go func() {
		doc, err := f.app.ScrapeURL(url, &firecrawl.ScrapeParams{
			Formats: []string{"html"},
		})
		done <- scrapeResult{doc: doc, err: err}
	}()

	var result scrapeResult
	select {
	case result = <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("firecrawl scrape of %s aborted: %w", url, ctx.Err())
	}

	if result.err != nil {
		return nil, fmt.Errorf("firecrawl scraping failed: %w", result.err)
	}
	if result.doc == nil || result.doc.HTML == "" {
		return nil, fmt.Errorf("no HTML returned from Firecrawl for %s", url)
	}

	html := result.doc.HTML
	images, err := processors.ImageSources(html)
	if err != nil {
		return nil, fmt.Errorf("failed to collect image sources: %w", err)
	}

	fetchTime := time.Since(startTime)
	f.logger.Info("Page fetched", map[string]interface{}{
		"url":         url,
		"html_length": len(html),
		"images":      len(images),
		"fetch_time":  fetchTime.String(),
	})

	return &models.Page{
		URL:       url,
		HTML:      html,
		ImageURLs: images,
		Engine:    f.Name(),
		FetchTime: fetchTime,
	}, nil
}

// Name returns the engine name
func (f *FirecrawlFetcher) Name() string {
	return "firecrawl"
}
