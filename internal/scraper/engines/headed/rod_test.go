package headed

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

func TestSettleWaitsForDelay(t *testing.T) {
	start := time.Now()
	assert.NoError(t, settle(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSettleStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := settle(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSettleZeroDelay(t *testing.T) {
	assert.NoError(t, settle(context.Background(), 0))
}

func TestRodFetcherName(t *testing.T) {
	assert.Equal(t, "rod", NewRodFetcher(config.Default()).Name())
}

func TestRodFetchRendersPage(t *testing.T) {
	cfg := browserConfig(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	page, err := NewRodFetcher(cfg).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "rod", page.Engine)
	assert.Contains(t, page.HTML, "<h1>Widgets</h1>")
	assert.Equal(t, []string{"/first.jpg", "/second.jpg", "/late.jpg"}, page.ImageURLs)
}

func TestRodFetchUnreachableHost(t *testing.T) {
	cfg := browserConfig(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	unreachable := srv.URL
	srv.Close()

	_, err := NewRodFetcher(cfg).Fetch(context.Background(), unreachable)
	assert.Error(t, err)
}
