// ABOUTME: HTTP client for the LN2 generator sizing API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// Client is the API client for the sizing service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the backend URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Size calls GET /api/v1/sizing
func (c *Client) Size(ctx context.Context, req models.SizingRequest) (*models.SizingResponse, error) {
	var resp models.SizingResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/sizing?"+sizingQuery(req), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SizeBatch calls POST /api/v1/sizing/batch
func (c *Client) SizeBatch(ctx context.Context, items []models.SizingRequest) (*models.BatchResponse, error) {
	var resp models.BatchResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/sizing/batch", models.BatchRequest{Items: items}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Compare calls POST /api/v1/sizing/compare
func (c *Client) Compare(ctx context.Context, input models.ScenarioInput) (*models.ScenarioComparison, error) {
	var comparison models.ScenarioComparison
	if err := c.do(ctx, http.MethodPost, "/api/v1/sizing/compare", input, &comparison); err != nil {
		return nil, err
	}
	return &comparison, nil
}

// Recommendations calls GET /api/v1/sizing/recommendations
func (c *Client) Recommendations(ctx context.Context, req models.SizingRequest) (*models.RecommendationsResponse, error) {
	var resp models.RecommendationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/sizing/recommendations?"+sizingQuery(req), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stages calls GET /api/v1/stages
func (c *Client) Stages(ctx context.Context, req models.SizingRequest) (*models.StagesResponse, error) {
	var resp models.StagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/stages?"+sizingQuery(req), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Revisions calls GET /api/v1/revisions
func (c *Client) Revisions(ctx context.Context) (*models.RevisionsResponse, error) {
	var resp models.RevisionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/revisions", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func sizingQuery(req models.SizingRequest) string {
	q := url.Values{}
	q.Set("production", strconv.FormatFloat(req.TargetProductionLitersPerDay, 'g', -1, 64))
	q.Set("purity", strconv.FormatFloat(req.OxygenPurityPercent, 'g', -1, 64))
	q.Set("pressure", strconv.FormatFloat(req.FeedPressureBar, 'g', -1, 64))
	if req.Revision != "" {
		q.Set("revision", req.Revision)
	}
	return q.Encode()
}

// do sends a request with an optional JSON body and decodes a JSON response into out
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// APIError is a non-200 response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend error: %s (%s)", e.Message, e.Details)
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error, Details: errResp.Details}
}
