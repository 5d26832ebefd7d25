package websearch

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Google queries the Programmable Search (Custom Search JSON) API.
type Google struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogle returns nil, nil when the key or engine id is missing.
func NewGoogle(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*Google, error) {
	if apiKey == "" || cx == "" {
		return nil, nil
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}
	return &Google{svc: svc, cx: cx}, nil
}

func (g *Google) Name() string { return ProviderGoogle }

func (g *Google) Search(ctx context.Context, query string, n int) ([]Result, error) {
	res, err := g.svc.Cse.List().Q(query).Cx(g.cx).Num(int64(n)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("custom search failed: %w", err)
	}

	out := make([]Result, 0, len(res.Items))
	for _, item := range res.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}
		out = append(out, Result{Title: item.Title, URL: item.Link})
	}
	return out, nil
}
