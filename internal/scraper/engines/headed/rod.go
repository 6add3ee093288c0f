package headed

import (
	"context"
	"fmt"
	"time"

	"universal-scraper/internal/config"
	"universal-scraper/internal/logging"
	"universal-scraper/internal/logging/types"
	"universal-scraper/internal/processors"
	"universal-scraper/pkg/models"
)

// RodFetcher renders pages in a fresh headless Chrome driven by Rod
type RodFetcher struct {
	config *config.Config
	logger types.Logger
}

// NewRodFetcher creates a new Rod fetcher. No browser is started until Fetch.
func NewRodFetcher(cfg *config.Config) *RodFetcher {
	return &RodFetcher{
		config: cfg,
		logger: logging.GetGlobalLogger().WithField("engine", "rod"),
	}
}

// Fetch navigates to url, scrolls once, waits the settle delay and returns the final markup
func (rf *RodFetcher) Fetch(ctx context.Context, url string) (*models.Page, error) {
	startTime := time.Now()

	rf.logger.Info("Fetching page", map[string]interface{}{
		"url": url,
	})

	session, err := OpenSession(ctx, rf.config, rf.logger)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if err := session.Navigate(ctx, url, rf.config.Scraper.PageTimeout); err != nil {
		return nil, err
	}

	if err := session.ScrollToBottom(ctx); err != nil {
		return nil, err
	}

	if err := settle(ctx, rf.config.Scraper.SettleDelay); err != nil {
		return nil, err
	}

	html, err := session.HTML(ctx)
	if err != nil {
		return nil, err
	}

	images, err := processors.ImageSources(html)
	if err != nil {
		return nil, fmt.Errorf("failed to collect image sources: %w", err)
	}

	fetchTime := time.Since(startTime)
	rf.logger.Info("Page fetched", map[string]interface{}{
		"url":         url,
		"html_length": len(html),
		"images":      len(images),
		"fetch_time":  fetchTime.String(),
	})

	return &models.Page{
		URL:       url,
		HTML:      html,
		ImageURLs: images,
		Engine:    rf.Name(),
		FetchTime: fetchTime,
	}, nil
}

// Name returns the engine name
func (rf *RodFetcher) Name() string {
	return "rod"
}

// settle waits for lazy content after the scroll, returning early if ctx ends
func settle(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("settle delay interrupted: %w", ctx.Err())
	}
}
