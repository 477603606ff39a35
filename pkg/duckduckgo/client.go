// Package duckduckgo is a minimal client for the DuckDuckGo Instant
// Answer API.
package duckduckgo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.duckduckgo.com"

// Client fetches instant answers.
type Client interface {
	InstantAnswer(ctx context.Context, query string) (*Answer, error)
}

// Answer is the instant-answer payload. Only the fields the verifier
// reads are mapped.
type Answer struct {
	AbstractText  string         `json:"AbstractText"`
	Answer        string         `json:"Answer"`
	RelatedTopics []RelatedTopic `json:"RelatedTopics"`
}

// RelatedTopic is one related-topic entry.
type RelatedTopic struct {
	Text string `json:"Text"`
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

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a DuckDuckGo client with a 5 second timeout.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) InstantAnswer(ctx context.Context, query string) (*Answer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "duckduckgo: rate limit wait")
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("duckduckgo: unexpected status %d", resp.StatusCode)
	}

	var answer Answer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, eris.Wrap(err, "duckduckgo: unmarshal response")
	}
	return &answer, nil
}
