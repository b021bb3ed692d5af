// Package nvd provides an HTTP-based implementation of cveanalyzer.FeedSource
// that downloads the NVD JSON 1.1 yearly feed files.
package nvd

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is where NVD publishes the legacy JSON 1.1 feed files.
const DefaultBaseURL = "https://nvd.nist.gov/feeds/json/cve/1.1"

// DefaultFetchTimeout is the default timeout for a single feed download.
// Yearly feeds run tens of megabytes, so this is generous compared to a
// typical request timeout.
const DefaultFetchTimeout = 5 * time.Minute

// DefaultRequestsPerMinute matches NVD's published rate limit for
// unauthenticated clients.
const DefaultRequestsPerMinute = 10

// Ensure Client implements cveanalyzer.FeedSource at compile time.
var _ cveanalyzer.FeedSource = (*Client)(nil)

// Client downloads gzip-compressed yearly CVE feed files over HTTP.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for a single feed download.
// Defaults to DefaultFetchTimeout (5m) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseURL overrides the feed base URL. Useful for testing against a
// local server or a mirror.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithRequestsPerMinute overrides the request rate limit.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(float64(n)/60), 1)
	}
}

// NewClient creates a new NVD feed client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultFetchTimeout,
		limiter: rate.NewLimiter(rate.Limit(float64(DefaultRequestsPerMinute)/60), 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// FetchYear downloads and decompresses the feed file for the given year.
// NVD publishes yearly feeds from 2002 onward.
func (c *Client) FetchYear(ctx context.Context, year int) ([]byte, error) {
	if year < 2002 {
		return nil, cveanalyzer.Errorf(cveanalyzer.EINVALID, "no feed published for year %d", year)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/nvdcve-1.1-%d.json.gz", c.baseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, cveanalyzer.Errorf(cveanalyzer.ENOTFOUND, "no feed found for year %d", year)
	case resp.StatusCode != http.StatusOK:
		return nil, cveanalyzer.Errorf(cveanalyzer.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decompressing feed for year %d: %w", year, err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("reading feed for year %d: %w", year, err)
	}

	return data, nil
}
