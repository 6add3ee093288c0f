package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-scraper/internal/logging"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

type fakeFetcher struct {
	page *models.Page
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*models.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := *f.page
	page.URL = url
	return &page, nil
}

func (f *fakeFetcher) Name() string { return "fake" }

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(context.Context, string, string) (string, error) {
	g.calls++
	return g.reply, g.err
}

func request(fields ...string) *models.ScrapeRequest {
	return &models.ScrapeRequest{
		URL:          "https://shop.example.com/widgets",
		Fields:       fields,
		ChunkSize:    5000,
		ChunkOverlap: 2000,
		Model:        "gemini-1.5-flash",
	}
}

const widgetPage = `<html><body><h1>Widget</h1><p>9.99</p><img src="w.jpg"></body></html>`

func TestRunSingleChunkScenario(t *testing.T) {
	fetcher := &fakeFetcher{page: &models.Page{HTML: widgetPage, ImageURLs: []string{"w.jpg"}}}
	gen := &fakeGenerator{reply: `{"listings":[{"title":"Widget","price":"9.99"}]}`}

	result, err := New(fetcher, gen, logging.NewMultiLogger()).Run(context.Background(), request("title", "price"))
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	records := result.Extraction.Records
	require.Len(t, records, 1)
	assert.Equal(t, []string{"title", "price"}, records[0].Keys())
	assert.Equal(t, "Widget", records[0].Text("title"))
	assert.Equal(t, "9.99", records[0].Text("price"))
	assert.False(t, records[0].Has("image_url"))

	assert.Equal(t, 1, result.Extraction.ChunkCount)
	assert.Equal(t, 1, result.Extraction.ImageCount)
	assert.Equal(t, 0, result.Extraction.SkippedChunks)
	assert.True(t, result.Extraction.HasData())
}

func TestRunAllChunksUnparsable(t *testing.T) {
	fetcher := &fakeFetcher{page: &models.Page{HTML: widgetPage}}
	gen := &fakeGenerator{reply: "I could not find any listings."}

	result, err := New(fetcher, gen, logging.NewMultiLogger()).Run(context.Background(), request("title"))
	require.NoError(t, err)

	assert.Empty(t, result.Extraction.Records)
	assert.False(t, result.Extraction.HasData())
	assert.Equal(t, 1, result.Extraction.SkippedChunks)
}

func TestRunEmptyPageMakesNoModelCalls(t *testing.T) {
	fetcher := &fakeFetcher{page: &models.Page{HTML: `<html><body><script>x()</script></body></html>`}}
	gen := &fakeGenerator{reply: `{"listings":[]}`}

	result, err := New(fetcher, gen, logging.NewMultiLogger()).Run(context.Background(), request("title"))
	require.NoError(t, err)
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 0, result.Extraction.ChunkCount)
	assert.False(t, result.Extraction.HasData())
}

func TestRunFetchFailureIsScrapingError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("net::ERR_NAME_NOT_RESOLVED")}

	_, err := New(fetcher, &fakeGenerator{}, logging.NewMultiLogger()).Run(context.Background(), request("title"))
	require.Error(t, err)

	customErr, ok := utils.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, customErr.Code)
	assert.Equal(t, "scraping_failed", customErr.Kind)
}

func TestRunGeneratorFailureIsLLMError(t *testing.T) {
	fetcher := &fakeFetcher{page: &models.Page{HTML: widgetPage}}
	gen := &fakeGenerator{err: errors.New("401 unauthorized")}

	_, err := New(fetcher, gen, logging.NewMultiLogger()).Run(context.Background(), request("title"))
	require.Error(t, err)

	customErr, ok := utils.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, customErr.Code)
}

// blockingFetcher waits out the caller's deadline the way a stalled page load does
type blockingFetcher struct{}

func (blockingFetcher) Fetch(ctx context.Context, _ string) (*models.Page, error) {
	<-ctx.Done()
	return nil, fmt.Errorf("settle delay interrupted: %w", ctx.Err())
}

func (blockingFetcher) Name() string { return "blocking" }

func TestRunFetchDeadlineIsNotWrapped(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(blockingFetcher{}, &fakeGenerator{}, logging.NewMultiLogger()).Run(ctx, request("title"))
	require.Error(t, err)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	_, isCustom := utils.AsCustomError(err)
	assert.False(t, isCustom)
}
