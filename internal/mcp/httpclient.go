package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/rpecalc/internal/rpe"
	"github.com/meltforce/rpecalc/internal/storage"
)

// HTTPClient implements Calculator by calling the rpecalc REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// server, and its history, live elsewhere.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies Calculator.
var _ Calculator = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey
// may be empty when the remote server runs without auth.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("httpclient: %s %s: %s", method, path, apiErr.Error)
		}
		return nil, fmt.Errorf("httpclient: %s %s: status %d", method, path, resp.StatusCode)
	}
	return data, nil
}

func (c *HTTPClient) WarmupSets(ctx context.Context, rpeVal, weight float64, reps int) ([]rpe.WarmupSet, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/calculate-warmup", nil,
		map[string]any{"rpe": rpeVal, "weight": weight, "reps": reps})
	if err != nil {
		return nil, err
	}

	var resp struct {
		WarmupSets []rpe.WarmupSet `json:"warmup_sets"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode warmup response: %w", err)
	}
	return resp.WarmupSets, nil
}

func (c *HTTPClient) MaxReps(ctx context.Context, weight, rpeVal float64) (int, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/max-reps", nil,
		map[string]any{"weight": weight, "rpe": rpeVal})
	if err != nil {
		return 0, err
	}

	var resp struct {
		PredictedMaxReps int `json:"predicted_max_reps"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("httpclient: decode max-reps response: %w", err)
	}
	return resp.PredictedMaxReps, nil
}

func (c *HTTPClient) Chart(ctx context.Context) ([]rpe.ChartRow, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/v1/chart", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Chart []rpe.ChartRow `json:"chart"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode chart response: %w", err)
	}
	return resp.Chart, nil
}

func (c *HTTPClient) History(ctx context.Context, kind string, limit int) ([]storage.Calculation, error) {
	params := url.Values{}
	if kind != "" {
		params.Set("kind", kind)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	data, err := c.do(ctx, http.MethodGet, "/api/v1/history", params, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		History []storage.Calculation `json:"history"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode history response: %w", err)
	}
	return resp.History, nil
}
