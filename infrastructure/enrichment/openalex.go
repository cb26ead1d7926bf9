package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	appErrors "topicmap-backend/pkg/errors"
)

const openAlexBaseURL = "https://api.openalex.org/works"

// OpenAlex searches the OpenAlex works index. It is the primary
// provider: free, no key, generous rate limits.
type OpenAlex struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenAlex creates an OpenAlex searcher.
func NewOpenAlex(httpClient *http.Client) *OpenAlex {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAlex{httpClient: httpClient, baseURL: openAlexBaseURL}
}

// Name identifies the provider in logs and breaker names.
func (o *OpenAlex) Name() string { return "openalex" }

type openAlexResponse struct {
	Results []struct {
		Title       string `json:"title"`
		DisplayName string `json:"display_name"`
	} `json:"results"`
}

// Search returns up to limit paper titles matching the topic.
func (o *OpenAlex) Search(ctx context.Context, topic string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("search", topic)
	q.Set("per-page", fmt.Sprintf("%d", limit))
	q.Set("select", "title,display_name")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, appErrors.NewTransportError("build openalex request", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstreamError("openalex", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.NewUpstreamError("openalex",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, appErrors.NewUpstreamError("openalex", err)
	}

	titles := make([]string, 0, len(body.Results))
	for _, r := range body.Results {
		title := r.Title
		if title == "" {
			title = r.DisplayName
		}
		if title != "" {
			titles = append(titles, title)
		}
		if len(titles) >= limit {
			break
		}
	}
	return titles, nil
}
