package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/c360studio/semstreams/pkg/retry"
)

// maxResponseSize limits a lookup response body.
const maxResponseSize = 8 * 1024 * 1024

// DefaultRetryConfig returns the retry budget the public lookup services
// tolerate: three attempts, a fixed 60 second pause between them.
func DefaultRetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:  3,
		InitialDelay: 60 * time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   1,
		AddJitter:    false,
	}
}

// Client is the HTTP transport shared by every lookup source. It issues GET
// requests with query parameters, decodes JSON responses and retries
// transient failures.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryConfig retry.Config
	logger      *slog.Logger
	metrics     *Metrics
	source      Source
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(cfg retry.Config) ClientOption {
	return func(client *Client) {
		client.retryConfig = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithMetrics records request outcomes and retries.
func WithMetrics(m *Metrics) ClientOption {
	return func(client *Client) {
		client.metrics = m
	}
}

// WithBaseURL overrides the endpoint, for mirrors and tests.
func WithBaseURL(u string) ClientOption {
	return func(client *Client) {
		client.baseURL = u
	}
}

// NewClient creates a client for the endpoint at baseURL.
func NewClient(source Source, baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     baseURL,
		source:      source,
		retryConfig: DefaultRetryConfig(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the endpoint the client queries.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON sends a GET request with params and decodes the JSON body into
// out, retrying transient failures according to the retry configuration.
func (c *Client) GetJSON(ctx context.Context, params url.Values, out any) error {
	attempt := 0
	err := retry.Do(ctx, c.retryConfig, func() error {
		attempt++
		if attempt > 1 {
			c.metrics.retried(c.source)
		}

		err := c.doRequest(ctx, params, out)
		if err == nil {
			return nil
		}
		if IsFatal(err) {
			return retry.NonRetryable(err)
		}

		c.logger.Debug("Lookup request failed",
			"source", c.source,
			"attempt", attempt,
			"max_attempts", c.retryConfig.MaxAttempts,
			"status", StatusCode(err),
			"error", err)
		return err
	})

	if err != nil {
		c.metrics.request(c.source, outcomeError)
		return fmt.Errorf("%s lookup: %w", c.source, err)
	}
	c.metrics.request(c.source, outcomeOK)
	return nil
}

// doRequest executes a single HTTP request.
func (c *Client) doRequest(ctx context.Context, params url.Values, out any) error {
	reqURL := c.baseURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return NewFatalError(fmt.Errorf("create HTTP request: %w", err))
	}
	// DBpedia Lookup answers with XML unless asked otherwise.
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return NewTransientError(fmt.Errorf("HTTP request failed: %w", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return NewTransientError(fmt.Errorf("read response body: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK {
		return classifyHTTPError(httpResp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewFatalError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}
