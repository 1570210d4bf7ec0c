// Package metadata provides best-effort page title lookups for resource
// URLs. Lookups enrich display only: a failure degrades the affected entry
// and never propagates.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit caps lookups at 4 requests per second so a panel
	// full of links does not hammer remote hosts.
	DefaultRateLimit = 4.0

	// maxBodyBytes bounds how much of a page is read looking for a title.
	maxBodyBytes = 256 * 1024

	// DefaultUserAgent identifies the client to remote hosts.
	DefaultUserAgent = "topograph/1.0 (+https://github.com/thorne/topograph)"
)

// titlePattern extracts the document title. Good enough for enrichment;
// pages without a plain title tag simply stay unenriched.
var titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Info is the metadata resolved for a URL.
type Info struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Client is a rate-limited HTTP client for page metadata lookups.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit overrides the requests-per-second cap.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a metadata lookup client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the page at rawURL and extracts its title. There is no
// retry; callers treat any error as "no metadata".
func (c *Client) Lookup(ctx context.Context, rawURL string) (Info, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Info{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Info{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Info{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Info{}, fmt.Errorf("reading %s: %w", rawURL, err)
	}

	info := Info{URL: rawURL}
	if m := titlePattern.FindSubmatch(body); m != nil {
		info.Title = strings.TrimSpace(string(m[1]))
	}
	return info, nil
}
