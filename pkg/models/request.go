package models

import "strings"

// ScrapeRequest represents the user configuration for one pipeline run
type ScrapeRequest struct {
	URL          string   `json:"url" form:"url" validate:"required,url"`
	Fields       []string `json:"fields" form:"fields" validate:"required,min=1,max=10,unique,dive,required,field_name"`
	ChunkSize    int      `json:"chunk_size" form:"chunk_size" validate:"min=5000,max=25000"`
	ChunkOverlap int      `json:"chunk_overlap" form:"chunk_overlap" validate:"min=100,max=2000"`
	Model        string   `json:"model" form:"model" validate:"required"`
}

// ApplyDefaults fills zero-valued tuning fields
func (r *ScrapeRequest) ApplyDefaults(chunkSize, chunkOverlap int, model string) {
	if r.ChunkSize == 0 {
		r.ChunkSize = chunkSize
	}
	if r.ChunkOverlap == 0 {
		r.ChunkOverlap = chunkOverlap
	}
	if r.Model == "" {
		r.Model = model
	}
}

// ParseFieldList splits user input on commas and newlines, trimming blanks and
// dropping repeats while preserving first-seen order.
func ParseFieldList(raw ...string) []string {
	var fields []string
	seen := make(map[string]bool)

	for _, chunk := range raw {
		for _, part := range strings.FieldsFunc(chunk, func(r rune) bool { return r == ',' || r == '\n' || r == '\r' }) {
			field := strings.TrimSpace(part)
			if field == "" || seen[field] {
				continue
			}
			seen[field] = true
			fields = append(fields, field)
		}
	}

	return fields
}
