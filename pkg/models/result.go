package models

import "time"

// ExtractionResult is the outcome of one completed scrape. It is the only
// state kept between requests; a new scrape replaces it.
type ExtractionResult struct {
	URL           string    `json:"url"`
	Fields        []string  `json:"fields"`
	Records       []Record  `json:"records"`
	ChunkCount    int       `json:"chunk_count"`
	ImageCount    int       `json:"image_count"`
	SkippedChunks int       `json:"skipped_chunks"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasData reports whether the result holds at least one record
func (r *ExtractionResult) HasData() bool {
	return r != nil && len(r.Records) > 0
}
