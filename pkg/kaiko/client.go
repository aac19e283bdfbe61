package kaiko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"ratefeed-api/pkg/pricing"
)

const (
	defaultMarketDataURL    = "https://us.market-api.kaiko.io/"
	defaultReferenceDataURL = "https://reference-data-api.kaiko.io/"
	defaultHTTPTimeout      = 10 * time.Second
	defaultMaxRetries       = 3
	defaultRetryBackoffBase = 150 * time.Millisecond

	userAgent           = "Kaiko Chainlink Exchange Rate Adapter"
	instrumentsEndpoint = "v1/instruments"
)

// Client implements pricing.MarketDataSource against the Kaiko market
// data and reference data APIs.
type Client struct {
	marketDataURL    string
	referenceDataURL string
	apiKey           string
	httpClient       *http.Client
	maxRetries       int
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMarketDataURL overrides the market data API base URL.
func WithMarketDataURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.marketDataURL = ensureTrailingSlash(u)
		}
	}
}

// WithReferenceDataURL overrides the reference data API base URL.
func WithReferenceDataURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.referenceDataURL = ensureTrailingSlash(u)
		}
	}
}

// WithAPIKey sets the X-Api-Key header value.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// NewClient constructs a Kaiko API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		marketDataURL:    defaultMarketDataURL,
		referenceDataURL: defaultReferenceDataURL,
		httpClient:       &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries:       defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// NewClientFromConfig constructs a Client from a loaded Config.
func NewClientFromConfig(cfg *Config) *Client {
	opts := []Option{WithAPIKey(cfg.APIKey)}
	if cfg.MarketDataURL != "" {
		opts = append(opts, WithMarketDataURL(cfg.MarketDataURL))
	}
	if cfg.ReferenceDataURL != "" {
		opts = append(opts, WithReferenceDataURL(cfg.ReferenceDataURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, WithMaxRetries(cfg.MaxRetries))
	}
	return NewClient(opts...)
}

type instrumentsResponse struct {
	Data []pricing.Instrument `json:"data"`
}

type ratesResponse struct {
	Data []pricing.RateSample `json:"data"`
}

// ListInstruments implements pricing.MarketDataSource by fetching the
// full instrument catalog from the reference data API.
func (c *Client) ListInstruments(ctx context.Context) ([]pricing.Instrument, error) {
	var payload instrumentsResponse
	if err := c.get(ctx, c.referenceDataURL+instrumentsEndpoint, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// FetchRates implements pricing.MarketDataSource by fetching recent rate
// samples from the market data API.
func (c *Client) FetchRates(ctx context.Context, endpoint string, q pricing.RateQuery) ([]pricing.RateSample, error) {
	params := url.Values{}
	if q.Interval != "" {
		params.Set("interval", q.Interval)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	var payload ratesResponse
	if err := c.get(ctx, c.marketDataURL+endpoint, params, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// get issues a GET request with the API headers, retrying transient
// failures with doubling backoff, and decodes the body into result.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values, result interface{}) error {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}
	logx.WithContext(ctx).Infof("kaiko: forwarding request url=%s", rawURL)

	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("kaiko: build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		if c.apiKey != "" {
			req.Header.Set("X-Api-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("kaiko: read response: %w", readErr)
			} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("kaiko: http status %d: %s", resp.StatusCode, string(body))
			} else {
				if result != nil {
					if err := json.Unmarshal(body, result); err != nil {
						return fmt.Errorf("kaiko: decode response: %w", err)
					}
				}
				return nil
			}
		}

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("kaiko: request failed without error detail")
}

func ensureTrailingSlash(u string) string {
	if u == "" || u[len(u)-1] == '/' {
		return u
	}
	return u + "/"
}
