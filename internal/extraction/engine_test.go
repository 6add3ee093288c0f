package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-scraper/internal/logging"
)

// scriptedGenerator replies with one canned answer per call
type scriptedGenerator struct {
	replies []string
	prompts []string
	err     error
}

func (g *scriptedGenerator) Generate(_ context.Context, _ string, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.prompts = append(g.prompts, prompt)
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func newTestEngine(gen *scriptedGenerator) *Engine {
	return NewEngine(gen, logging.NewMultiLogger())
}

func TestExtractAssignsImagesAcrossChunks(t *testing.T) {
	reply := `{"listings":[{"title":"item","image_url":"some_image_url"}]}`
	gen := &scriptedGenerator{replies: []string{reply, reply, reply}}
	queue := NewImageQueue([]string{"a.jpg", "b.jpg"})

	records, outcomes, err := newTestEngine(gen).Extract(context.Background(), "", []string{"c1", "c2", "c3"}, []string{"title", "image_url"}, queue)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Len(t, outcomes, 3)

	assert.Equal(t, "a.jpg", records[0].Text("image_url"))
	assert.Equal(t, "b.jpg", records[1].Text("image_url"))
	assert.Equal(t, "some_image_url", records[2].Text("image_url"))
	assert.Equal(t, 0, queue.Len())

	// each prompt sees only what is left in the queue
	assert.Contains(t, gen.prompts[0], `["a.jpg","b.jpg"]`)
	assert.Contains(t, gen.prompts[1], `["b.jpg"]`)
	assert.Contains(t, gen.prompts[2], `[]`)
}

func TestExtractSingleChunk(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{`{"listings":[{"title":"Widget","price":"9.99"}]}`}}

	records, _, err := newTestEngine(gen).Extract(context.Background(), "", []string{"only chunk"}, []string{"title", "price"}, NewImageQueue([]string{"a.jpg"}))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, []string{"title", "price"}, records[0].Keys())
	assert.Equal(t, "Widget", records[0].Text("title"))
	assert.Equal(t, "9.99", records[0].Text("price"))
	assert.False(t, records[0].Has("image_url"))
}

func TestExtractSkipsUnusableReplies(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{
		"sorry, I cannot help with that",
		`{"items":[{"title":"wrong key"}]}`,
		`{"listings":{"title":"not an array"}}`,
		`{"listings":["text", 3, {"title":"kept"}]}`,
	}}

	records, outcomes, err := newTestEngine(gen).Extract(context.Background(), "", []string{"a", "b", "c", "d"}, []string{"title"}, NewImageQueue(nil))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "kept", records[0].Text("title"))

	require.Len(t, outcomes, 4)
	assert.True(t, outcomes[0].Skipped)
	assert.Equal(t, ReasonUnparsable, outcomes[0].Reason)
	assert.True(t, outcomes[1].Skipped)
	assert.Equal(t, ReasonMissingListing, outcomes[1].Reason)
	assert.True(t, outcomes[2].Skipped)
	assert.False(t, outcomes[3].Skipped)
}

func TestExtractAllUnparsableYieldsEmptyList(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"nope", "still nope"}}

	records, outcomes, err := newTestEngine(gen).Extract(context.Background(), "", []string{"a", "b"}, []string{"title"}, NewImageQueue(nil))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Len(t, outcomes, 2)
}

func TestExtractGeneratorErrorAborts(t *testing.T) {
	boom := errors.New("quota exceeded")
	gen := &scriptedGenerator{err: boom}

	_, _, err := newTestEngine(gen).Extract(context.Background(), "", []string{"a"}, []string{"title"}, NewImageQueue(nil))
	assert.ErrorIs(t, err, boom)
}

func TestExtractHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &scriptedGenerator{replies: []string{`{"listings":[]}`}}
	_, _, err := newTestEngine(gen).Extract(ctx, "", []string{"a"}, []string{"title"}, NewImageQueue(nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, gen.prompts)
}

func TestExtractNoChunks(t *testing.T) {
	records, outcomes, err := newTestEngine(&scriptedGenerator{}).Extract(context.Background(), "", nil, []string{"title"}, NewImageQueue(nil))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, outcomes)
}
