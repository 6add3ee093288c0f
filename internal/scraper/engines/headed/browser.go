package headed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"universal-scraper/internal/config"
	"universal-scraper/internal/logging/types"
	"universal-scraper/internal/scraper/engines/chrome"
)

// scrollToBottomJS triggers lazy-loaded content once before the settle delay
const scrollToBottomJS = `() => window.scrollTo(0, document.body.scrollHeight)`

// BrowserSession is one browser process plus one page, owned by a single fetch
type BrowserSession struct {
	launcher *launcher.Launcher
	Browser  *rod.Browser
	Page     *rod.Page
	logger   types.Logger
}

// newLauncher configures Chrome with the flags needed inside containers
func newLauncher(cfg *config.Config, logger types.Logger) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Scraper.HeadlessMode).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		// Docker: no GPU context, tiny /dev/shm
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	if chromePath := chrome.FindBinary(cfg.Scraper.ChromeBin); chromePath != "" {
		l = l.Bin(chromePath)
		logger.Debug("Using system Chrome browser", map[string]interface{}{
			"chrome_path": chromePath,
		})
	} else {
		logger.Warn("System Chrome not found, Rod will download browser")
	}

	if cfg.Scraper.UserAgent != "" {
		l = l.Set("user-agent", cfg.Scraper.UserAgent)
	}

	return l
}

// OpenSession launches a browser and opens a page. The caller must Close it.
func OpenSession(ctx context.Context, cfg *config.Config, logger types.Logger) (*BrowserSession, error) {
	l := newLauncher(cfg, logger).Context(ctx)

	controlURL, err := l.Launch()
	if err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	session := &BrowserSession{
		launcher: l,
		Browser:  browser,
		logger:   logger,
	}

	page, err := session.newPage(cfg)
	if err != nil {
		session.Close()
		return nil, err
	}
	session.Page = page

	return session, nil
}

func (bs *BrowserSession) newPage(cfg *config.Config) (*rod.Page, error) {
	var (
		page *rod.Page
		err  error
	)
	if cfg.Scraper.StealthMode {
		page, err = stealth.Page(bs.Browser)
	} else {
		page, err = bs.Browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		bs.logger.Warn("Failed to set viewport", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if cfg.Scraper.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: cfg.Scraper.UserAgent,
		}); err != nil {
			bs.logger.Warn("Failed to set user agent", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if _, err := page.SetExtraHeaders([]string{"Accept-Language", "en-US,en;q=0.9"}); err != nil {
		bs.logger.Debug("Failed to set headers", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return page, nil
}

// Navigate loads url and waits for the load event, bounded by timeout
func (bs *BrowserSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page := bs.Page.Context(navCtx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page %s did not finish loading: %w", url, err)
	}

	bs.logger.Debug("Successfully navigated to URL", map[string]interface{}{
		"url": url,
	})
	return nil
}

// ScrollToBottom performs a single full-page scroll
func (bs *BrowserSession) ScrollToBottom(ctx context.Context) error {
	if _, err := bs.Page.Context(ctx).Eval(scrollToBottomJS); err != nil {
		return fmt.Errorf("failed to scroll page: %w", err)
	}
	return nil
}

// HTML returns the full markup of the current page
func (bs *BrowserSession) HTML(ctx context.Context) (string, error) {
	html, err := bs.Page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}
	return html, nil
}

// Close releases the page, the browser and its process. Safe to call once per session.
func (bs *BrowserSession) Close() {
	if bs.Page != nil {
		if err := bs.Page.Close(); err != nil {
			bs.logger.Debug("Failed to close page", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if err := bs.Browser.Close(); err != nil {
		bs.logger.Debug("Failed to close browser", map[string]interface{}{
			"error": err.Error(),
		})
	}
	bs.launcher.Kill()
	bs.launcher.Cleanup()
	bs.logger.Debug("Browser session released")
}
