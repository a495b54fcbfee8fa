package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// Songs lists every chart file the server has indexed.
// Uses GET /songs.
func (c *Client) Songs(ctx context.Context) ([]SongSummary, error) {
	body, err := c.Get(ctx, "/songs")
	if err != nil {
		return nil, err
	}

	var songs []SongSummary
	if err := json.Unmarshal(body, &songs); err != nil {
		return nil, fmt.Errorf("failed to parse songs response: %w", err)
	}

	return songs, nil
}

// Search returns the songs whose charts play the target pattern.
// Uses POST /search.
func (c *Client) Search(ctx context.Context, pattern []string) ([]SearchResult, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("search requires a pattern")
	}

	body, err := c.Post(ctx, "/search", SearchRequest{Pattern: pattern})
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return results, nil
}

// Reload asks the server to rescan its library.
// Uses POST /reload; the rescan itself is asynchronous.
func (c *Client) Reload(ctx context.Context) error {
	_, err := c.Post(ctx, "/reload", nil)
	return err
}
