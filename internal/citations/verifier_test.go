package citations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard/truthguard/internal/model"
)

func TestExtractURLs(t *testing.T) {
	urls := ExtractURLs("See https://example.com/docs. Also https://example.com/docs, and https://other.org/page?x=1!")
	assert.Equal(t, []string{"https://example.com/docs", "https://other.org/page?x=1"}, urls)
}

func TestExtractURLs_None(t *testing.T) {
	assert.Empty(t, ExtractURLs("no links here"))
}

func TestExtractPatterns(t *testing.T) {
	text := "According to the Federal Reserve, rates rose. Source: internal report\nPer SEC Rule 2019-1 this applies."
	patterns := ExtractPatterns(text)

	types := map[model.CitationPatternType]string{}
	for _, p := range patterns {
		types[p.Type] = p.Source
		assert.NotEmpty(t, p.Context)
	}

	assert.Equal(t, "the Federal Reserve", types[model.CitationAccordingTo])
	assert.Equal(t, "internal report", types[model.CitationSource])
	assert.Contains(t, types, model.CitationRegulation)
}

func TestValidateURL_Malformed(t *testing.T) {
	v := NewVerifier()

	c := v.ValidateURL(context.Background(), "not-a-url")
	assert.False(t, c.IsValid)
	assert.Equal(t, "malformed URL", c.ErrorMessage)

	c = v.ValidateURL(context.Background(), "/relative/path")
	assert.False(t, c.IsValid)
}

func TestValidateURL_StatusCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("hello"))
		case "/redirect":
			http.Redirect(w, r, "/ok", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	v := NewVerifier(WithHTTPClient(srv.Client()))

	ok := v.ValidateURL(context.Background(), srv.URL+"/ok")
	assert.True(t, ok.IsValid)
	assert.Equal(t, http.StatusOK, ok.HTTPStatusCode)
	assert.Equal(t, "text/html", ok.ContentType)

	// Redirects are followed; the final 200 decides.
	redirected := v.ValidateURL(context.Background(), srv.URL+"/redirect")
	assert.True(t, redirected.IsValid)

	missing := v.ValidateURL(context.Background(), srv.URL+"/missing")
	assert.False(t, missing.IsValid)
	assert.Equal(t, http.StatusNotFound, missing.HTTPStatusCode)
}

func TestExtractAndValidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/real" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	v := NewVerifier(WithHTTPClient(srv.Client()))
	text := "Details at " + srv.URL + "/real and " + srv.URL + "/fake. According to company records, all is well."

	report := v.ExtractAndValidate(context.Background(), text)
	require.Len(t, report.URLs, 2)
	assert.Equal(t, 1, report.ValidCitations)
	assert.Equal(t, 1, report.FakeCitations)
	assert.Len(t, report.Patterns, 1)
	assert.Equal(t, 3, report.TotalCitations)
}
