package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const serpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPI queries Google through serpapi.com.
type SerpAPI struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSerpAPI returns nil when no key is configured so the chain skips it.
func NewSerpAPI(apiKey string, timeout time.Duration) *SerpAPI {
	if apiKey == "" {
		return nil
	}
	return &SerpAPI{apiKey: apiKey, endpoint: serpAPIEndpoint, client: &http.Client{Timeout: timeout}}
}

func (s *SerpAPI) Name() string { return ProviderSerpAPI }

type serpResponse struct {
	OrganicResults []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

func (s *SerpAPI) Search(ctx context.Context, query string, n int) ([]Result, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", strconv.Itoa(n))
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call serpapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("serpapi status %d: %s", resp.StatusCode, string(raw))
	}

	var data serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode serpapi response: %w", err)
	}
	if data.Error != "" {
		return nil, fmt.Errorf("serpapi: %s", data.Error)
	}

	var out []Result
	for _, item := range data.OrganicResults {
		if item.Title == "" || item.Link == "" {
			continue
		}
		out = append(out, Result{Title: item.Title, URL: item.Link})
		if len(out) >= n {
			break
		}
	}
	return out, nil
}
