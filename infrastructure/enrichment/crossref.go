package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	appErrors "topicmap-backend/pkg/errors"
)

const crossrefBaseURL = "https://api.crossref.org/works"

// Crossref searches the Crossref works index. Last-resort provider;
// broadest coverage but noisiest matching.
type Crossref struct {
	httpClient *http.Client
	baseURL    string
}

// NewCrossref creates a Crossref searcher.
func NewCrossref(httpClient *http.Client) *Crossref {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Crossref{httpClient: httpClient, baseURL: crossrefBaseURL}
}

// Name identifies the provider in logs and breaker names.
func (c *Crossref) Name() string { return "crossref" }

type crossrefResponse struct {
	Message struct {
		Items []struct {
			Title []string `json:"title"`
		} `json:"items"`
	} `json:"message"`
}

// Search returns up to limit paper titles matching the topic.
func (c *Crossref) Search(ctx context.Context, topic string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("query", topic)
	q.Set("rows", fmt.Sprintf("%d", limit))
	q.Set("select", "title")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, appErrors.NewTransportError("build crossref request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstreamError("crossref", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.NewUpstreamError("crossref",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, appErrors.NewUpstreamError("crossref", err)
	}

	titles := make([]string, 0, len(body.Message.Items))
	for _, item := range body.Message.Items {
		if len(item.Title) > 0 && item.Title[0] != "" {
			titles = append(titles, item.Title[0])
		}
		if len(titles) >= limit {
			break
		}
	}
	return titles, nil
}
