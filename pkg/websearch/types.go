package websearch

import (
	"context"
	"time"
)

const (
	DefaultTopK = 5
	MaxTopK     = 10

	maxTitleRunes = 200
	maxURLRunes   = 500

	ProviderSerpAPI    = "serpapi"
	ProviderGoogle     = "google"
	ProviderDuckDuckGo = "duckduckgo"
	ProviderKeywords   = "built-in-keywords"

	TraceSearch   = "search"
	TraceNote     = "note"
	TraceEvidence = "evidence"

	fallbackNote    = "⚠️ Web search unavailable - using built-in ATS keyword database"
	fallbackSummary = " (Note: These are curated ATS keywords since live web search is unavailable)"
)

// Result is one normalized search hit.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TraceItem records one step of a search for the tool trace.
type TraceItem struct {
	Type     string    `json:"type"`
	At       time.Time `json:"at"`
	Query    string    `json:"query,omitempty"`
	Text     string    `json:"text,omitempty"`
	Items    []Result  `json:"items,omitempty"`
	Provider string    `json:"provider,omitempty"`
}

// Response is what a search returns to the agent.
type Response struct {
	Trace    []TraceItem `json:"_trace"`
	Results  []Result    `json:"results"`
	Provider string      `json:"provider"`
	Summary  string      `json:"summary"`
}

// Provider is one backend in the chain. An empty result with a nil error
// means "not available, try the next one".
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, n int) ([]Result, error)
}

// Observer is notified with the provider that answered each search.
type Observer interface {
	ObserveSearch(provider string)
}
