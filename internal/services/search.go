// ABOUTME: Web search service backed by the DuckDuckGo HTML endpoint
// ABOUTME: Rate limited, region aware, parses result blocks with x/net/html
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxResults applies when a request names no max_results
	DefaultMaxResults = 5
	maxResultsCap     = 30
	userAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// SearchConfig configures the search service
type SearchConfig struct {
	BaseURL    string
	Region     string
	Timeout    time.Duration
	RatePerSec float64
	HTTPClient *http.Client
}

// Search queries DuckDuckGo
type Search struct {
	baseURL string
	region  string
	timeout time.Duration
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewSearch creates the search service
func NewSearch(cfg SearchConfig, logger *zap.Logger) *Search {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	limit := rate.Limit(cfg.RatePerSec)
	if cfg.RatePerSec <= 0 {
		limit = rate.Inf
	}
	return &Search{
		baseURL: cfg.BaseURL,
		region:  cfg.Region,
		timeout: cfg.Timeout,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.Named("search"),
	}
}

// Capabilities lists what the service offers
func (s *Search) Capabilities() []string {
	return []string{"web_search", "news_search"}
}

// ClampMaxResults bounds n to 1..30
func ClampMaxResults(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxResultsCap {
		return maxResultsCap
	}
	return n
}

// Handle searches for "query". "max_results" defaults to 5; "mode"=news searches news.
func (s *Search) Handle(ctx context.Context, req models.Request) models.Result {
	query := strings.TrimSpace(req.Data.String(models.ParamQuery, ""))
	if query == "" {
		return models.Failure("No search query provided")
	}
	maxResults := ClampMaxResults(req.Data.Int(models.ParamMaxResults, DefaultMaxResults))
	news := strings.EqualFold(req.Data.String(models.ParamMode, ""), "news")

	hits, err := s.Search(ctx, query, maxResults, news)
	if err != nil {
		s.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return models.Failure(fmt.Sprintf("Search failed: %v", err))
	}

	return models.Success(
		models.SearchResults{Query: query, Results: hits, TotalResults: len(hits)},
		fmt.Sprintf("Found %d results", len(hits)),
	)
}

// Search performs one DuckDuckGo query and returns at most maxResults hits
func (s *Search) Search(ctx context.Context, query string, maxResults int, news bool) ([]models.SearchHit, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	params := url.Values{}
	params.Set("q", query)
	if s.region != "" {
		params.Set("kl", s.region)
	}
	if news {
		params.Set("iar", "news")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	hits, err := ParseResults(string(body), maxResults)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("search completed", zap.String("query", query), zap.Int("results", len(hits)))
	return hits, nil
}

// Shutdown releases idle connections
func (s *Search) Shutdown(ctx context.Context) error {
	s.client.CloseIdleConnections()
	return nil
}

// ParseResults extracts result blocks from a DuckDuckGo HTML page
func ParseResults(page string, maxResults int) ([]models.SearchHit, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	hits := make([]models.SearchHit, 0, maxResults)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(hits) >= maxResults {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" {
			class := attr(n, "class")
			if strings.Contains(class, "result") && strings.Contains(class, "results_links") {
				if hit := extractHit(n); hit.URL != "" && hit.Title != "" {
					hits = append(hits, hit)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return hits, nil
}

func extractHit(n *html.Node) models.SearchHit {
	var hit models.SearchHit

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			class := attr(n, "class")
			switch {
			case n.Data == "a" && strings.Contains(class, "result__a"):
				hit.URL = attr(n, "href")
				hit.Title = nodeText(n)
			case strings.Contains(class, "result__snippet"):
				hit.Snippet = nodeText(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	hit.URL = unwrapRedirect(hit.URL)
	return hit
}

// unwrapRedirect resolves DuckDuckGo's //duckduckgo.com/l/?uddg= links to the target URL
func unwrapRedirect(link string) string {
	if !strings.Contains(link, "duckduckgo.com/l/") {
		return link
	}
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return link
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
