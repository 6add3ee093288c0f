// Package pipeline runs one scrape: fetch, normalize, chunk, extract.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"universal-scraper/internal/extraction"
	"universal-scraper/internal/llm"
	"universal-scraper/internal/logging/types"
	"universal-scraper/internal/processors"
	"universal-scraper/internal/scraper"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

// Result is everything one run produced
type Result struct {
	Extraction     *models.ExtractionResult
	Outcomes       []extraction.ChunkOutcome
	Page           *models.Page
	ProcessingTime time.Duration
}

// Pipeline wires a fetcher and a generator into a single sequential run
type Pipeline struct {
	fetcher   scraper.Fetcher
	generator llm.Generator
	cleaner   *processors.HTMLCleaner
	logger    types.Logger
}

// New creates a pipeline around fetcher and generator
func New(fetcher scraper.Fetcher, generator llm.Generator, logger types.Logger) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		generator: generator,
		cleaner:   processors.NewHTMLCleaner(),
		logger:    logger,
	}
}

// Run scrapes req.URL and extracts req.Fields. Fetch failures come back as a
// scraping error and model transport failures as an LLM error; chunks with
// unusable model output are skipped and counted. Cancellation and deadlines
// are returned unwrapped from either stage.
func (p *Pipeline) Run(ctx context.Context, req *models.ScrapeRequest) (*Result, error) {
	startTime := time.Now()
	logger := p.logger.WithFields(map[string]interface{}{
		"url":    req.URL,
		"engine": p.fetcher.Name(),
	})

	logger.Info("Scrape started", map[string]interface{}{
		"fields":        req.Fields,
		"chunk_size":    req.ChunkSize,
		"chunk_overlap": req.ChunkOverlap,
		"model":         req.Model,
	})

	page, err := p.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		logger.Error("Page fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		if isContextErr(err) {
			return nil, err
		}
		return nil, utils.NewScrapingError(err)
	}

	text, err := p.cleaner.VisibleText(page.HTML)
	if err != nil {
		return nil, utils.NewScrapingError(fmt.Errorf("failed to normalize page: %w", err))
	}

	chunker, err := processors.NewChunker(req.ChunkSize, req.ChunkOverlap)
	if err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	chunks, err := chunker.Split(text)
	if err != nil {
		return nil, utils.NewInternalServerError(fmt.Sprintf("failed to chunk page text: %v", err))
	}

	logger.Debug("Page prepared for extraction", map[string]interface{}{
		"text_length": len(text),
		"chunks":      len(chunks),
		"images":      len(page.ImageURLs),
	})

	queue := extraction.NewImageQueue(page.ImageURLs)
	engine := extraction.NewEngine(p.generator, logger)

	records, outcomes, err := engine.Extract(ctx, req.Model, chunks, req.Fields, queue)
	if err != nil {
		logger.Error("Extraction aborted", map[string]interface{}{
			"error":            err.Error(),
			"chunks_completed": len(outcomes),
		})
		if isContextErr(err) {
			return nil, err
		}
		return nil, utils.NewLLMError(err)
	}

	skipped := 0
	for _, outcome := range outcomes {
		if outcome.Skipped {
			skipped++
		}
	}

	result := &Result{
		Extraction: &models.ExtractionResult{
			URL:           req.URL,
			Fields:        append([]string(nil), req.Fields...),
			Records:       records,
			ChunkCount:    len(chunks),
			ImageCount:    len(page.ImageURLs),
			SkippedChunks: skipped,
			CreatedAt:     time.Now(),
		},
		Outcomes:       outcomes,
		Page:           page,
		ProcessingTime: time.Since(startTime),
	}

	logger.Info("Scrape completed", map[string]interface{}{
		"records":         len(records),
		"chunks":          len(chunks),
		"skipped_chunks":  skipped,
		"processing_time": result.ProcessingTime.String(),
	})

	return result, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
