// Package nbastats provides the HTTP client for the stats.nba.com endpoints
// behind player pages and search.
//
// stats.nba.com answers every endpoint with the same envelope: a list of
// named result sets, each a header row plus positional rows. It rejects
// requests without browser-like headers and throttles aggressive callers,
// so requests go through a token bucket limiter.
package nbastats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/courtside/internal/metrics"
)

const (
	DefaultBaseURL = "https://stats.nba.com/stats"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer   = "https://www.nba.com/"
)

var (
	ErrInvalidPlayerID = errors.New("player id must be positive")
	ErrPlayerNotFound  = errors.New("player not found")
)

// Client is the shared HTTP client for all stats.nba.com endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a stats.nba.com client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// resultSetResponse is the common stats.nba.com response wrapper.
type resultSetResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// set returns the named result set, or an empty one when absent.
func (r *resultSetResponse) set(name string) resultSet {
	for _, rs := range r.ResultSets {
		if rs.Name == name {
			return rs
		}
	}
	return resultSet{Name: name}
}

// rows maps each positional row onto its headers.
func (rs resultSet) rows() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		m := make(map[string]interface{}, len(rs.Headers))
		for i, h := range rs.Headers {
			if i < len(row) {
				m[h] = row[i]
			}
		}
		out = append(out, m)
	}
	return out
}

// get performs a rate-limited GET request to a stats.nba.com endpoint.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*resultSetResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	resp, err := c.do(ctx, endpoint, params)
	metrics.ObserveProvider(endpoint, err, time.Since(start))
	if err != nil {
		c.logger.Warn("stats.nba.com request failed", "endpoint", endpoint, "error", err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values) (*resultSetResponse, error) {
	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", referer)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats.nba.com %s returned %d: %s", endpoint, resp.StatusCode, truncate(body, 200))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var result resultSetResponse
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
