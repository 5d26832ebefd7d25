package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"
	duckDuckGoUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Selectors tried in order; the first one that yields results wins.
var duckDuckGoSelectors = []string{".result__a", ".links_main a", "a.result__url"}

// DuckDuckGo scrapes the HTML endpoint. No key required.
type DuckDuckGo struct {
	endpoint string
	client   *http.Client
}

func NewDuckDuckGo(timeout time.Duration) *DuckDuckGo {
	return &DuckDuckGo{endpoint: duckDuckGoEndpoint, client: &http.Client{Timeout: timeout}}
}

func (d *DuckDuckGo) Name() string { return ProviderDuckDuckGo }

func (d *DuckDuckGo) Search(ctx context.Context, query string, n int) ([]Result, error) {
	form := url.Values{"q": {query}, "b": {""}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", duckDuckGoUA)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call duckduckgo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duckduckgo html: %w", err)
	}
	return parseDuckDuckGo(doc, n), nil
}

func parseDuckDuckGo(doc *goquery.Document, n int) []Result {
	var out []Result
	for _, sel := range duckDuckGoSelectors {
		doc.Find(sel).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			title := strings.Join(strings.Fields(a.Text()), " ")
			href, _ := a.Attr("href")
			if title != "" && strings.Contains(href, "http") {
				out = append(out, Result{Title: title, URL: href})
			}
			return len(out) < n
		})
		if len(out) > 0 {
			break
		}
	}
	return out
}
