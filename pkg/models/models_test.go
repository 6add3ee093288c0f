package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRecordPreservesKeyOrder(t *testing.T) {
	rec, ok := RecordFromJSON(gjson.Parse(`{"title":"Widget","price":9.99,"image_url":null,"tags":["a","b"]}`))
	require.True(t, ok)

	assert.Equal(t, []string{"title", "price", "image_url", "tags"}, rec.Keys())

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Widget","price":9.99,"image_url":null,"tags":["a","b"]}`, string(data))
}

func TestRecordSetOverwritesInPlace(t *testing.T) {
	rec := RecordOf("title", "x", "image_url", "placeholder")
	rec.Set("image_url", "a.jpg")

	assert.Equal(t, []string{"title", "image_url"}, rec.Keys())
	v, _ := rec.Get("image_url")
	assert.Equal(t, "a.jpg", v)
}

func TestRecordFromJSONRejectsNonObjects(t *testing.T) {
	_, ok := RecordFromJSON(gjson.Parse(`["not","an","object"]`))
	assert.False(t, ok)
}

func TestRecordTextValues(t *testing.T) {
	rec, ok := RecordFromJSON(gjson.Parse(`{"s":"text","n":42,"b":true,"z":null,"o":{"k": 1}}`))
	require.True(t, ok)

	assert.Equal(t, "text", rec.Text("s"))
	assert.Equal(t, "42", rec.Text("n"))
	assert.Equal(t, "True", rec.Text("b"))
	assert.Equal(t, "", rec.Text("z"))
	assert.Equal(t, `{"k":1}`, rec.Text("o"))
	assert.Equal(t, "", rec.Text("missing"))
}

func TestRecordMarshalDoesNotEscapeHTML(t *testing.T) {
	data, err := json.Marshal(RecordOf("name", "Tom & Jerry <DVD>"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Tom & Jerry <DVD>")
}

func TestRecordUnmarshalRoundTrip(t *testing.T) {
	var records []Record
	require.NoError(t, json.Unmarshal([]byte(`[{"b":"1","a":"2"},{"a":"3"}]`), &records))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"b", "a"}, records[0].Keys())
	assert.Equal(t, "3", records[1].Text("a"))
}

func TestParseFieldList(t *testing.T) {
	fields := ParseFieldList("title, price,\nimage_url", "price", " ,")
	assert.Equal(t, []string{"title", "price", "image_url"}, fields)
}

func TestApplyDefaults(t *testing.T) {
	req := ScrapeRequest{URL: "https://example.com", ChunkOverlap: 500}
	req.ApplyDefaults(5000, 2000, "gemini-1.5-flash")

	assert.Equal(t, 5000, req.ChunkSize)
	assert.Equal(t, 500, req.ChunkOverlap)
	assert.Equal(t, "gemini-1.5-flash", req.Model)
}
