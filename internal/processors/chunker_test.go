package processors

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkerShortTextIsOneChunk(t *testing.T) {
	chunker, err := NewChunker(5000, 2000)
	require.NoError(t, err)

	chunks, err := chunker.Split("Widget\n9.99")
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget\n9.99"}, chunks)
}

func TestChunkerEmptyText(t *testing.T) {
	chunker, err := NewChunker(5000, 100)
	require.NoError(t, err)

	chunks, err := chunker.Split("")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkerRespectsSize(t *testing.T) {
	chunker, err := NewChunker(100, 20)
	require.NoError(t, err)

	var lines []string
	for i := 0; i < 60; i++ {
		lines = append(lines, "listing line with a few words")
	}
	text := strings.Join(lines, "\n")

	chunks, err := chunker.Split(text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 100)
		assert.Contains(t, text, chunk)
	}
}

func TestChunkerRejectsBadBounds(t *testing.T) {
	_, err := NewChunker(0, 0)
	assert.Error(t, err)

	_, err = NewChunker(100, 100)
	assert.Error(t, err)

	_, err = NewChunker(100, -1)
	assert.Error(t, err)
}
