package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEverything(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","articles":[
			{"title": "Acme earnings beat estimates", "description": "Record quarter", "url": "https://example.com/a"},
			{"title": "Markets rally", "description": "Broad gains", "url": "https://example.com/b"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("secret-key", WithBaseURL(srv.URL))
	articles, err := c.Everything(context.Background(), "acme earnings", 2)
	require.NoError(t, err)

	assert.Equal(t, "/everything", gotPath)
	assert.Equal(t, []string{"acme earnings"}, gotQuery["q"])
	assert.Equal(t, []string{"secret-key"}, gotQuery["apiKey"])
	assert.Equal(t, []string{"relevancy"}, gotQuery["sortBy"])
	assert.Equal(t, []string{"2"}, gotQuery["pageSize"])
	assert.Equal(t, []string{"en"}, gotQuery["language"])

	require.Len(t, articles, 2)
	assert.Equal(t, "Acme earnings beat estimates", articles[0].Title)
	assert.Equal(t, "https://example.com/b", articles[1].URL)
}

func TestEverything_DefaultPageSize(t *testing.T) {
	var gotPageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("pageSize")
		_, _ = w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Everything(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Equal(t, "3", gotPageSize)
}

func TestEverything_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status":"error","code":"rateLimited"}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Everything(context.Background(), "anything", 1)
	assert.True(t, eris.Is(err, ErrRateLimited))
}

func TestEverything_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid"}`))
	}))
	defer srv.Close()

	c := NewClient("bad", WithBaseURL(srv.URL))
	_, err := c.Everything(context.Background(), "anything", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")
}
