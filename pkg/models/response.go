package models

import "time"

// ScrapeResponse represents the response from a scrape request
type ScrapeResponse struct {
	Success        bool          `json:"success"`
	Records        []Record      `json:"records"`
	RecordCount    int           `json:"record_count"`
	ChunkCount     int           `json:"chunk_count"`
	ImageCount     int           `json:"image_count"`
	SkippedChunks  int           `json:"skipped_chunks"`
	ProcessingTime time.Duration `json:"processing_time"`
	RequestID      string        `json:"request_id"`
	SessionID      string        `json:"session_id"`
}

// ResultsResponse is the stored result of the caller's session
type ResultsResponse struct {
	Records     []Record `json:"records"`
	RecordCount int      `json:"record_count"`
	SessionID   string   `json:"session_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
