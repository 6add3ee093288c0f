package models

import "time"

// Page is the outcome of fetching a URL: final markup plus image sources in document order
type Page struct {
	URL       string        `json:"url"`
	HTML      string        `json:"-"`
	ImageURLs []string      `json:"image_urls"`
	Engine    string        `json:"engine"`
	FetchTime time.Duration `json:"fetch_time"`
}
