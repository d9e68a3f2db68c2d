package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/customHttpClient"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

type searchClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewSearchClient creates a web search client against the configured search
// API. Returns nil when no API key is configured so the pipeline can skip
// enrichment instead of hammering an endpoint that will reject it.
func NewSearchClient() Searcher {
	if config.SearchAPIKey == "" {
		return nil
	}
	return &searchClient{
		baseURL: config.SearchBaseURL,
		apiKey:  config.SearchAPIKey,
		http:    customHttpClient.NewPooledClient(config.SearchTimeout),
	}
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
	} `json:"results"`
}

func (c *searchClient) Search(ctx context.Context, query string, limit int) ([]dealModel.Finding, error) {
	body, err := json.Marshal(searchRequest{Query: query, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send search request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API status %d: %s", resp.StatusCode, string(respBody))
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal search response: %w", err)
	}

	findings := make([]dealModel.Finding, 0, len(result.Results))
	for _, r := range result.Results {
		if r.URL == "" && r.Title == "" {
			continue
		}
		findings = append(findings, dealModel.Finding{Title: r.Title, URL: r.URL, Snippet: r.Snippet})
	}
	return findings, nil
}
