// Package api provides the HTTP client for the rmtDev jobs endpoint.
//
// This package handles the two wire calls the application makes (list search
// and per-id detail) and converts untyped JSON payloads into validated
// domain structs at the fetch boundary.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public demo backend.
const DefaultBaseURL = "https://bytegrad.com/course-assets/projects/rmtdev/api/data"

// userAgent identifies the client to the backend.
const userAgent = "jobdeck/1.0 (https://github.com/libertycoverage/jobdeck)"

// Client talks to the jobs endpoint. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client with the given base URL and request timeout.
// Requests are rate-limited to roughly four per second so that rapid
// debounce commits cannot hammer the demo backend.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 2),
	}
}

// searchResponse mirrors the top-level list payload.
type searchResponse struct {
	JobItems []JobItem `json:"jobItems"`
}

// detailResponse mirrors the top-level detail payload.
type detailResponse struct {
	JobItem JobDetails `json:"jobItem"`
}

// errorResponse mirrors the failure body: {"description": "..."}.
type errorResponse struct {
	Description string `json:"description"`
}

// SearchJobs issues one list query for the given non-empty search text.
// Malformed rows in the payload are dropped; a non-2xx response returns a
// typed *APIError. Callers decide what an empty query means; this method
// assumes the text has already passed the empty-string gate upstream.
func (c *Client) SearchJobs(ctx context.Context, query string) ([]JobItem, error) {
	u := c.baseURL + "?search=" + url.QueryEscape(query)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]JobItem, 0, len(resp.JobItems))
	for _, item := range resp.JobItems {
		if item.valid() {
			items = append(items, item)
		}
	}
	return items, nil
}

// GetJob fetches the full record for a single id via GET {base}/{id}.
func (c *Client) GetJob(ctx context.Context, id int) (*JobDetails, error) {
	u := fmt.Sprintf("%s/%d", c.baseURL, id)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp detailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode detail response: %w", err)
	}
	if !resp.JobItem.valid() {
		return nil, fmt.Errorf("detail payload for id %d is malformed", id)
	}
	return &resp.JobItem, nil
}

// get performs a rate-limited GET and returns the response body.
// Non-2xx responses become *APIError with the body's description.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorResponse
		if json.Unmarshal(body, &eb) == nil {
			apiErr.Description = eb.Description
		}
		return nil, apiErr
	}

	return body, nil
}
