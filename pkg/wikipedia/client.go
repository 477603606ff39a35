// Package wikipedia is a minimal client for the Wikipedia REST API:
// direct page summaries and title search.
package wikipedia

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://en.wikipedia.org/api/rest_v1"
	defaultUserAgent = "TruthGuard/1.0 (https://truthguard.ai)"
)

// ErrNotFound is returned when no page exists for a title.
var ErrNotFound = eris.New("wikipedia: page not found")

// Client fetches page summaries and search results.
type Client interface {
	Summary(ctx context.Context, title string) (*Summary, error)
	Search(ctx context.Context, query string, limit int) ([]SearchPage, error)
}

// Summary is the REST summary payload for one page.
type Summary struct {
	Title       string      `json:"title"`
	Extract     string      `json:"extract"`
	ContentURLs ContentURLs `json:"content_urls"`
}

// ContentURLs carries the canonical page links.
type ContentURLs struct {
	Desktop PageURL `json:"desktop"`
}

// PageURL is a single canonical link.
type PageURL struct {
	Page string `json:"page"`
}

// SearchPage is one result from the title search endpoint.
type SearchPage struct {
	Title   string `json:"title"`
	Snippet string `json:"excerpt"`
}

type searchResponse struct {
	Pages []SearchPage `json:"pages"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) { c.userAgent = ua }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

type httpClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a Wikipedia REST client with a 5 second timeout.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: 5 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(10), 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Summary(ctx context.Context, title string) (*Summary, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "wikipedia: rate limit wait")
	}

	u := c.baseURL + "/page/summary/" + url.PathEscape(title)
	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("wikipedia: summary status %d", status)
	}

	var summary Summary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, eris.Wrap(err, "wikipedia: unmarshal summary")
	}
	return &summary, nil
}

func (c *httpClient) Search(ctx context.Context, query string, limit int) ([]SearchPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "wikipedia: rate limit wait")
	}

	q := url.Values{}
	q.Set("q", query)
	if limit <= 0 {
		limit = 5
	}
	q.Set("limit", strconv.Itoa(limit))
	body, status, err := c.get(ctx, c.baseURL+"/page/search?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, eris.Errorf("wikipedia: search status %d", status)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "wikipedia: unmarshal search")
	}
	return resp.Pages, nil
}

func (c *httpClient) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, eris.Wrap(err, "wikipedia: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, eris.Wrap(err, "wikipedia: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, eris.Wrap(err, "wikipedia: read response")
	}
	return body, resp.StatusCode, nil
}

