package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "topicmap-backend/pkg/errors"
)

func TestOpenAlex_ParsesTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "graph neural networks", r.URL.Query().Get("search"))
		assert.Equal(t, "2", r.URL.Query().Get("per-page"))
		w.Write([]byte(`{"results":[
			{"title":"Paper One"},
			{"title":"","display_name":"Paper Two"},
			{"title":""}
		]}`))
	}))
	defer srv.Close()

	p := NewOpenAlex(srv.Client())
	p.baseURL = srv.URL

	papers, err := p.Search(context.Background(), "graph neural networks", 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"Paper One", "Paper Two"}, papers)
}

func TestOpenAlex_NonOKStatusIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenAlex(srv.Client())
	p.baseURL = srv.URL

	_, err := p.Search(context.Background(), "topic", 5)

	require.Error(t, err)
	assert.True(t, appErrors.IsUpstream(err))
}

func TestArXiv_ParsesAtomFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry><title>Attention Is
     All You Need</title></entry>
  <entry><title>Second Paper</title></entry>
</feed>`))
	}))
	defer srv.Close()

	p := NewArXiv(srv.Client())
	p.baseURL = srv.URL

	papers, err := p.Search(context.Background(), "attention", 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"Attention Is All You Need", "Second Paper"}, papers)
}

func TestCrossref_ParsesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "topic", r.URL.Query().Get("query"))
		w.Write([]byte(`{"message":{"items":[
			{"title":["First"]},
			{"title":[]},
			{"title":["Second","Subtitle"]}
		]}}`))
	}))
	defer srv.Close()

	p := NewCrossref(srv.Client())
	p.baseURL = srv.URL

	papers, err := p.Search(context.Background(), "topic", 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, papers)
}

func TestCrossref_RespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"items":[
			{"title":["A"]},{"title":["B"]},{"title":["C"]}
		]}}`))
	}))
	defer srv.Close()

	p := NewCrossref(srv.Client())
	p.baseURL = srv.URL

	papers, err := p.Search(context.Background(), "topic", 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, papers)
}
