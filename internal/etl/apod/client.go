// Package apod is a client for NASA's Astronomy Picture of the Day API.
package apod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	maxAttempts    = 3
	requestTimeout = 10 * time.Second
)

// Response is the raw APOD API payload. Optional fields arrive empty and get
// defaults in the transform step.
type Response struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright"`
}

// Client is an APOD API client with bounded retry.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// backoff returns the wait before retrying after a failed attempt
	// (zero-based). Overridable in tests.
	backoff func(attempt int) time.Duration
}

// NewClient creates a new APOD API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
}

// Fetch retrieves the APOD entry for the given date ("YYYY-MM-DD"). It makes
// up to maxAttempts requests with exponential backoff and fails hard once
// they are exhausted.
func (c *Client) Fetch(ctx context.Context, date string) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff(attempt - 1)):
			}
		}

		resp, err := c.fetchOnce(ctx, date)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to fetch apod data after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, date string) (*Response, error) {
	reqURL := fmt.Sprintf("%s?api_key=%s&date=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &payload, nil
}
