package websearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgLog "resume-optimizer/pkg/log"
)

// Chain tries providers in order and falls back to the built-in keyword list.
type Chain struct {
	providers []Provider
	fallback  Provider
	l         pkgLog.Logger
	observer  Observer
	now       func() time.Time
}

// New builds a chain. Nil providers are skipped.
func New(l pkgLog.Logger, observer Observer, providers ...Provider) *Chain {
	c := &Chain{
		fallback: NewKeywords(),
		l:        l,
		observer: observer,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, p := range providers {
		if p != nil {
			c.providers = append(c.providers, p)
		}
	}
	return c
}

// Search never fails: when no network provider returns anything the
// built-in keyword list answers.
func (c *Chain) Search(ctx context.Context, query string, topK int) Response {
	topK = clampTopK(topK)
	query = strings.TrimSpace(query)

	resp := Response{Trace: []TraceItem{{Type: TraceSearch, At: c.now(), Query: query}}}

	for _, p := range c.providers {
		results, err := p.Search(ctx, query, topK)
		if err != nil {
			c.l.Warnf(ctx, "pkg.websearch.Search: provider %s failed: %v", p.Name(), err)
			resp.Trace = append(resp.Trace, TraceItem{
				Type: TraceNote, At: c.now(), Text: fmt.Sprintf("Search error: %s: %v", p.Name(), err),
			})
			continue
		}
		results = normalizeAll(results)
		if len(results) > 0 {
			resp.Provider = p.Name()
			resp.Results = results
			break
		}
	}

	if len(resp.Results) == 0 {
		resp.Provider = c.fallback.Name()
		resp.Results, _ = c.fallback.Search(ctx, query, topK)
		resp.Trace = append(resp.Trace, TraceItem{Type: TraceNote, At: c.now(), Text: fallbackNote})
	}

	if len(resp.Results) > topK {
		resp.Results = resp.Results[:topK]
	}
	resp.Trace = append(resp.Trace, TraceItem{
		Type: TraceEvidence, At: c.now(), Items: resp.Results, Provider: resp.Provider,
	})

	resp.Summary = fmt.Sprintf("Search completed using %s. Found %d results.", resp.Provider, len(resp.Results))
	if resp.Provider == ProviderKeywords {
		resp.Summary += fallbackSummary
	}

	c.l.Infof(ctx, "pkg.websearch.Search: %q answered by %s (%d results)", query, resp.Provider, len(resp.Results))
	if c.observer != nil {
		c.observer.ObserveSearch(resp.Provider)
	}
	return resp
}

func clampTopK(k int) int {
	if k <= 0 {
		return DefaultTopK
	}
	if k > MaxTopK {
		return MaxTopK
	}
	return k
}

func normalize(title, url string) Result {
	return Result{
		Title: truncateRunes(strings.TrimSpace(title), maxTitleRunes),
		URL:   truncateRunes(strings.TrimSpace(url), maxURLRunes),
	}
}

func normalizeAll(in []Result) []Result {
	out := make([]Result, 0, len(in))
	for _, r := range in {
		n := normalize(r.Title, r.URL)
		if n.Title == "" || n.URL == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
