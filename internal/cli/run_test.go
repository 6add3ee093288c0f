package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-scraper/internal/pipeline"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

func TestReportWritesAllExports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	result := &pipeline.Result{
		Extraction: &models.ExtractionResult{
			Records:    []models.Record{models.RecordOf("title", "Widget", "price", "9.99")},
			ChunkCount: 1,
		},
		ProcessingTime: 1500 * time.Millisecond,
	}

	var out bytes.Buffer
	require.NoError(t, report(&out, result, dir))

	for _, name := range []string{"scraped_data.json", "scraped_data.csv", "scraped_data.xlsx"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0))
	}

	csvData, err := os.ReadFile(filepath.Join(dir, "scraped_data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "title,price\nWidget,9.99\n", string(csvData))
	assert.Contains(t, out.String(), "Records: 1")
	assert.Contains(t, out.String(), "1.50s")
}

func TestReportEmptyResultPrintsNotice(t *testing.T) {
	dir := t.TempDir()
	result := &pipeline.Result{Extraction: &models.ExtractionResult{ChunkCount: 2, SkippedChunks: 2}}

	var out bytes.Buffer
	require.NoError(t, report(&out, result, dir))

	assert.Contains(t, out.String(), utils.NoDataNotice)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunRequiresFields(t *testing.T) {
	err := ExecuteContext(context.Background(), "run", "https://example.com")
	assert.Error(t, err)
}
