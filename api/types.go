// Package api provides the client and wire types for the maistat HTTP API.
package api

import "fmt"

// SongSummary describes one chart file indexed by a running server.
type SongSummary struct {
	Path       string `json:"path"`
	Title      string `json:"title"`
	ChartCount int    `json:"chart_count"`
}

// SearchRequest asks the server for songs whose charts play a pattern.
type SearchRequest struct {
	Pattern []string `json:"pattern"`
}

// SearchResult is one song matching a search, with the numbers of the
// charts the pattern was found in.
type SearchResult struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Charts []int  `json:"charts"`
}

// ReloadResponse acknowledges a reload request.
type ReloadResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *ErrorResponse) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
	return e.Message
}
