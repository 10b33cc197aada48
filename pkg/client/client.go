// Package client is a Go client for the analysis HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/user/company-analyzer/internal/delivery/http/request"
	"github.com/user/company-analyzer/internal/delivery/http/response"
	"github.com/user/company-analyzer/internal/entity"
)

// DefaultPollInterval is used by Wait when no interval is given.
const DefaultPollInterval = 2 * time.Second

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analysis api: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis api: HTTP %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Client for the server at baseURL. A nil httpClient means
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: httpClient,
	}
}

// Submit starts an analysis of siteURL. A completed job for the same URL may
// be returned as-is.
func (c *Client) Submit(ctx context.Context, siteURL string) (*entity.AnalysisJob, error) {
	body, err := json.Marshal(request.AnalyzeRequest{URL: siteURL})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// Get fetches the job with the given id.
func (c *Client) Get(ctx context.Context, id string) (*entity.AnalysisJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/analysis/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Wait polls the job until it reaches a terminal status or ctx ends.
func (c *Client) Wait(ctx context.Context, id string, interval time.Duration) (*entity.AnalysisJob, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status.IsTerminal() {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) do(req *http.Request) (*entity.AnalysisJob, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody response.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Message
		}
		return nil, apiErr
	}

	var job entity.AnalysisJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to decode analysis job: %w", err)
	}
	return &job, nil
}
