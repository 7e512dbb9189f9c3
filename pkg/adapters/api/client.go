package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
)

// Client talks to the conversion API over HTTP.
// It sets no timeout of its own: a request lives as long as its context.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	observer   ports.Observer
	logger     *slog.Logger
}

var _ ports.ConversionAPI = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithObserver reports every request outcome to o.
func WithObserver(o ports.Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API rooted at baseURL (e.g. "http://127.0.0.1:8888").
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		raw = domain.DefaultAPIURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: scheme and host are required", raw)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		observer:   ports.NopObserver{},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type convertRequest struct {
	InputString string `json:"input_string"`
}

// Convert posts the raw input to the conversion route.
// The HTTP status is not inspected: error statuses carry a detail body
// that decodes like any other response.
func (c *Client) Convert(ctx context.Context, input string) (domain.ConversionResult, error) {
	payload, err := json.Marshal(convertRequest{InputString: input})
	if err != nil {
		return domain.ConversionResult{}, fmt.Errorf("failed to encode request: %w", err)
	}

	start := time.Now()
	body, err := c.do(ctx, http.MethodPost, domain.RouteConvert, payload)
	if err != nil {
		c.observer.ObserveRequest(domain.RouteConvert, ports.OutcomeTransport, time.Since(start))
		return domain.ConversionResult{}, err
	}

	res, err := domain.DecodeConversion(body)
	if err != nil {
		c.observer.ObserveRequest(domain.RouteConvert, ports.OutcomeMalformed, time.Since(start))
		return domain.ConversionResult{}, err
	}

	outcome := ports.OutcomeOK
	if res.Kind != domain.KindOutput {
		outcome = ports.OutcomeDetail
	}
	c.observer.ObserveRequest(domain.RouteConvert, outcome, time.Since(start))
	c.logger.Debug("Convert: response decoded", "kind", res.Kind.String(), "field", res.Field)
	return res, nil
}

// History fetches the history route.
func (c *Client) History(ctx context.Context) (domain.HistoryList, error) {
	start := time.Now()
	body, err := c.do(ctx, http.MethodGet, domain.RouteHistory, nil)
	if err != nil {
		c.observer.ObserveRequest(domain.RouteHistory, ports.OutcomeTransport, time.Since(start))
		return nil, err
	}

	list, err := domain.DecodeHistory(body)
	if err != nil {
		c.observer.ObserveRequest(domain.RouteHistory, ports.OutcomeMalformed, time.Since(start))
		return nil, err
	}

	c.observer.ObserveRequest(domain.RouteHistory, ports.OutcomeOK, time.Since(start))
	c.logger.Debug("History: response decoded", "entries", len(list))
	return list, nil
}

func (c *Client) do(ctx context.Context, method, route string, payload []byte) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(route)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed", "method", method, "route", route, "err", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrTransport, err)
	}
	c.logger.Debug("Request completed", "method", method, "route", route, "status", resp.StatusCode, "size", len(body))
	return body, nil
}
