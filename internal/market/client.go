package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/logging"
)

const (
	// DefaultStatsURL is the WECAR monthly statistics page
	DefaultStatsURL  = "https://windsorrealestate.com/monthly-stats"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxBodyBytes     = 5 << 20
)

// StatusError is returned when the stats page answers with a non-2xx status
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client fetches the market statistics page
type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
	log        *logrus.Entry
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the request timeout of the default HTTP client
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the browser-like default
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithClientLogger sets the logger
func WithClientLogger(logger *logrus.Logger) ClientOption {
	return func(c *Client) {
		c.log = logging.Component(logger, "market-client")
	}
}

// NewClient creates a client for the page at url
func NewClient(url string, opts ...ClientOption) *Client {
	if url == "" {
		url = DefaultStatsURL
	}
	c := &Client{
		url:       url,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: logging.Component(nil, "market-client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL returns the page address
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads the page body
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	c.log.WithField("url", c.url).Debug("Fetch started")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("Fetch failed: send request")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WithField("status", resp.StatusCode).Warn("Fetch failed: unexpected status")
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: c.url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.WithField("bytes", len(body)).Debug("Fetch completed")
	return body, nil
}
