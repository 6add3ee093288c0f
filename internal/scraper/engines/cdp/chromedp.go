// Package cdp fetches pages with chromedp, a pure Chrome DevTools Protocol client.
package cdp

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"universal-scraper/internal/config"
	"universal-scraper/internal/logging"
	"universal-scraper/internal/logging/types"
	"universal-scraper/internal/processors"
	"universal-scraper/internal/scraper/engines/chrome"
	"universal-scraper/pkg/models"
)

const scrollToBottomJS = `window.scrollTo(0, document.body.scrollHeight)`

// ChromedpFetcher renders pages in a fresh headless Chrome per fetch
type ChromedpFetcher struct {
	config *config.Config
	logger types.Logger
}

// NewChromedpFetcher creates a new chromedp fetcher
func NewChromedpFetcher(cfg *config.Config) *ChromedpFetcher {
	return &ChromedpFetcher{
		config: cfg,
		logger: logging.GetGlobalLogger().WithField("engine", "chromedp"),
	}
}

func (cf *ChromedpFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cf.config.Scraper.HeadlessMode),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	)

	if cf.config.Scraper.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cf.config.Scraper.UserAgent))
	}
	if chromePath := chrome.FindBinary(cf.config.Scraper.ChromeBin); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	return opts
}

// Fetch navigates to url, scrolls once, waits the settle delay and returns the final markup
func (cf *ChromedpFetcher) Fetch(ctx context.Context, url string) (*models.Page, error) {
	startTime := time.Now()

	cf.logger.Info("Fetching page", map[string]interface{}{
		"url": url,
	})

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, cf.allocatorOptions()...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	// the first Run starts Chrome and binds it to its context, so it must not carry the page timeout
	if err := chromedp.Run(tabCtx); err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	navCtx, cancelNav := context.WithTimeout(tabCtx, cf.config.Scraper.PageTimeout)
	err := chromedp.Run(navCtx, chromedp.Navigate(url))
	cancelNav()
	if err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	var html string
	err = chromedp.Run(tabCtx,
		chromedp.Evaluate(scrollToBottomJS, nil),
		chromedp.Sleep(cf.config.Scraper.SettleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture page %s: %w", url, err)
	}

	images, err := processors.ImageSources(html)
	if err != nil {
		return nil, fmt.Errorf("failed to collect image sources: %w", err)
	}

	fetchTime := time.Since(startTime)
	cf.logger.Info("Page fetched", map[string]interface{}{
		"url":         url,
		"html_length": len(html),
		"images":      len(images),
		"fetch_time":  fetchTime.String(),
	})

	return &models.Page{
		URL:       url,
		HTML:      html,
		ImageURLs: images,
		Engine:    cf.Name(),
		FetchTime: fetchTime,
	}, nil
}

// Name returns the engine name
func (cf *ChromedpFetcher) Name() string {
	return "chromedp"
}
