package extraction

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"universal-scraper/internal/llm"
	"universal-scraper/internal/logging/types"
	"universal-scraper/pkg/models"
)

// Skip reasons reported in ChunkOutcome
const (
	ReasonUnparsable     = "response is not a JSON object"
	ReasonMissingListing = "response has no listings array"
)

// ChunkOutcome records what one chunk contributed
type ChunkOutcome struct {
	Index   int             `json:"index"`
	Records []models.Record `json:"records,omitempty"`
	Skipped bool            `json:"skipped"`
	Reason  string          `json:"reason,omitempty"`
}

// Engine turns text chunks into records with one model call per chunk
type Engine struct {
	generator llm.Generator
	logger    types.Logger
}

// NewEngine creates an engine that calls generator for every chunk
func NewEngine(generator llm.Generator, logger types.Logger) *Engine {
	return &Engine{
		generator: generator,
		logger:    logger,
	}
}

// Extract processes chunks sequentially and returns the records of every
// chunk whose reply could be repaired, in chunk then response order. A chunk
// with an unusable reply is skipped without error. Image URLs are taken from
// queue for records carrying the image field until it runs dry. A generator
// failure aborts the run.
func (e *Engine) Extract(ctx context.Context, model string, chunks []string, fields []string, queue *ImageQueue) ([]models.Record, []ChunkOutcome, error) {
	records := []models.Record{}
	outcomes := make([]ChunkOutcome, 0, len(chunks))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return records, outcomes, fmt.Errorf("extraction cancelled before chunk %d: %w", i, err)
		}

		prompt := BuildPrompt(fields, queue.Remaining(), chunk)

		reply, err := e.generator.Generate(ctx, model, prompt)
		if err != nil {
			return records, outcomes, fmt.Errorf("model call failed for chunk %d: %w", i, err)
		}

		outcome := e.processReply(i, reply, queue)
		outcomes = append(outcomes, outcome)
		records = append(records, outcome.Records...)

		e.logger.Debug("Chunk processed", map[string]interface{}{
			"chunk":            i,
			"chunk_length":     len(chunk),
			"records":          len(outcome.Records),
			"skipped":          outcome.Skipped,
			"reason":           outcome.Reason,
			"images_remaining": queue.Len(),
		})
	}

	return records, outcomes, nil
}

func (e *Engine) processReply(index int, reply string, queue *ImageQueue) ChunkOutcome {
	parsed, ok := RepairJSON(reply)
	if !ok || !parsed.IsObject() {
		return ChunkOutcome{Index: index, Skipped: true, Reason: ReasonUnparsable}
	}

	listings := parsed.Get("listings")
	if !listings.IsArray() {
		return ChunkOutcome{Index: index, Skipped: true, Reason: ReasonMissingListing}
	}

	var records []models.Record
	listings.ForEach(func(_, entry gjson.Result) bool {
		record, ok := models.RecordFromJSON(entry)
		if !ok {
			return true
		}
		if record.Has(ImageField) {
			if url, ok := queue.Pop(); ok {
				record.Set(ImageField, url)
			}
		}
		records = append(records, record)
		return true
	})

	return ChunkOutcome{Index: index, Records: records}
}
