package cdp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-scraper/internal/config"
	"universal-scraper/internal/scraper/engines/chrome"
)

// listingPage adds one image from script so only rendered markup carries it
const listingPage = `<!DOCTYPE html>
<html><head><title>Shop</title></head>
<body>
<h1>Widgets</h1>
<img src="/first.jpg">
<p>Widget 9.99</p>
<img src="/second.jpg">
<script>document.body.insertAdjacentHTML('beforeend', '<img src="/late.jpg">')</script>
</body></html>`

func browserConfig(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if chrome.FindBinary("") == "" {
		t.Skip("no Chrome binary installed")
	}

	cfg := config.Default()
	cfg.Scraper.PageTimeout = 30 * time.Second
	cfg.Scraper.SettleDelay = 50 * time.Millisecond
	return cfg
}

func TestChromedpFetchRendersPage(t *testing.T) {
	cfg := browserConfig(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	page, err := NewChromedpFetcher(cfg).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "chromedp", page.Engine)
	assert.Contains(t, page.HTML, "<h1>Widgets</h1>")
	assert.Equal(t, []string{"/first.jpg", "/second.jpg", "/late.jpg"}, page.ImageURLs)
}

func TestChromedpFetchUnreachableHost(t *testing.T) {
	cfg := browserConfig(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	unreachable := srv.URL
	srv.Close()

	_, err := NewChromedpFetcher(cfg).Fetch(context.Background(), unreachable)
	assert.Error(t, err)
}

func TestChromedpFetcherName(t *testing.T) {
	assert.Equal(t, "chromedp", NewChromedpFetcher(config.Default()).Name())
}
