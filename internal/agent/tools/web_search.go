package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-optimizer/internal/agent"
	"resume-optimizer/pkg/websearch"
)

// Searcher is satisfied by *websearch.Chain.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) websearch.Response
}

// WebSearchTool looks up role keywords and industry terms.
type WebSearchTool struct {
	searcher Searcher
}

func NewWebSearchTool(searcher Searcher) agent.Tool {
	return &WebSearchTool{searcher: searcher}
}

func (t *WebSearchTool) Name() string {
	return agent.ToolWebSearch
}

func (t *WebSearchTool) Description() string {
	return "Search the web for the given query and return top results. Use sparingly for role keywords and industry terms."
}

func (t *WebSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"minLength":   1,
				"description": "Search query",
			},
			"top_k": map[string]interface{}{
				"type":        "integer",
				"minimum":     1,
				"maximum":     websearch.MaxTopK,
				"description": "Number of results to return (default 5)",
			},
		},
		"required": []string{"query"},
	}
}

func (t *WebSearchTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	topK := websearch.DefaultTopK
	switch v := params["top_k"].(type) {
	case float64:
		topK = int(v)
	case int:
		topK = v
	}

	resp := t.searcher.Search(ctx, query, topK)

	// Payloads are stored as JSON; keep the in-memory shape identical to a
	// reloaded one.
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search response: %w", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return payload, nil
}
