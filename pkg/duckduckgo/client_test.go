package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantAnswer(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"AbstractText": "Go is a programming language designed at Google.",
			"Answer": "",
			"RelatedTopics": [{"Text": "Go (game) - a board game"}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	answer, err := c.InstantAnswer(context.Background(), "go programming language")
	require.NoError(t, err)

	assert.Equal(t, []string{"go programming language"}, gotQuery["q"])
	assert.Equal(t, []string{"json"}, gotQuery["format"])
	assert.Equal(t, []string{"1"}, gotQuery["no_html"])
	assert.Equal(t, []string{"1"}, gotQuery["skip_disambig"])

	assert.Equal(t, "Go is a programming language designed at Google.", answer.AbstractText)
	require.Len(t, answer.RelatedTopics, 1)
	assert.Equal(t, "Go (game) - a board game", answer.RelatedTopics[0].Text)
}

func TestInstantAnswer_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.InstantAnswer(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestInstantAnswer_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.InstantAnswer(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}
