// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package rawg is a thin client for the RAWG game-metadata API. The server
// only proxies it so the API key never reaches the browser.
package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeberg.org/oliverandrich/mynextgame/internal/config"
)

// searchPageSize limits search results to what the discovery UI shows.
const searchPageSize = "5"

// Client talks to the RAWG API with a fixed key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a RAWG client from configuration.
func NewClient(cfg *config.RAWGConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Get performs a pass-through request to the given catalog path (for example
// "games" or "games/3498"), forwarding the caller's query parameters and
// injecting the API key. It returns the upstream status code and raw body so
// the handler can relay both.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (int, []byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.apiKey)

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimPrefix(path, "/"), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("rawg request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading rawg response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// Search looks up games matching the query and returns the bare results
// array from the upstream payload.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("page_size", searchPageSize)

	status, body, err := c.Get(ctx, "games", params)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("rawg search returned status %d", status)
	}

	var payload struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding rawg response: %w", err)
	}

	return payload.Results, nil
}
