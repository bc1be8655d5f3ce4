package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UserAgent identifies the collector to upstream sources.
const UserAgent = "NearthaScraper/1.0 (automated collection; for research purposes)"

// DefaultTimeout bounds every upstream request. There is no retry: the next
// scheduled run is the retry mechanism.
const DefaultTimeout = 30 * time.Second

// Client is the shared HTTP capability for all adapters: bounded timeout,
// pinned User-Agent, and non-2xx responses surfaced as errors.
type Client struct {
	http *http.Client
}

// NewClient creates a Client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Get fetches a URL and returns the response body.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// PostForm posts URL-encoded form values and returns the response body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", UserAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: unexpected status %d", req.URL.Host, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
