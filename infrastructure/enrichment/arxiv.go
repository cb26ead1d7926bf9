package enrichment

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	appErrors "topicmap-backend/pkg/errors"
)

const arxivBaseURL = "http://export.arxiv.org/api/query"

// ArXiv searches the arXiv Atom API. Secondary provider; strong for
// preprints, weaker for older published work.
type ArXiv struct {
	httpClient *http.Client
	baseURL    string
}

// NewArXiv creates an arXiv searcher.
func NewArXiv(httpClient *http.Client) *ArXiv {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ArXiv{httpClient: httpClient, baseURL: arxivBaseURL}
}

// Name identifies the provider in logs and breaker names.
func (a *ArXiv) Name() string { return "arxiv" }

type arxivFeed struct {
	Entries []struct {
		Title string `xml:"title"`
	} `xml:"entry"`
}

// Search returns up to limit paper titles matching the topic.
func (a *ArXiv) Search(ctx context.Context, topic string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("search_query", fmt.Sprintf("all:%q", topic))
	q.Set("start", "0")
	q.Set("max_results", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, appErrors.NewTransportError("build arxiv request", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstreamError("arxiv", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.NewUpstreamError("arxiv",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, appErrors.NewUpstreamError("arxiv", err)
	}

	titles := make([]string, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		// Atom titles wrap across lines with leading whitespace.
		title := strings.Join(strings.Fields(e.Title), " ")
		if title != "" {
			titles = append(titles, title)
		}
		if len(titles) >= limit {
			break
		}
	}
	return titles, nil
}
