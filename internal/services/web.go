// ABOUTME: Page-content extraction service: HTTP fetch plus HTML-to-text
// ABOUTME: Falls back to a headless browser for pages whose text only appears after rendering
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Extraction methods reported in PageContent.Method
const (
	MethodHTTP    = "http"
	MethodBrowser = "browser"
)

// PageRenderer renders a page in a browser and returns its title and visible text
type PageRenderer interface {
	Render(ctx context.Context, url string) (title, text string, err error)
	Close() error
}

// WebConfig configures the page-extraction service
type WebConfig struct {
	Timeout    time.Duration
	MaxContent int
	HTTPClient *http.Client
	// Renderer is optional; nil disables the browser fallback
	Renderer PageRenderer
}

// Web extracts readable text from web pages
type Web struct {
	timeout    time.Duration
	maxContent int
	client     *http.Client
	renderer   PageRenderer
	logger     *zap.Logger
}

// NewWeb creates the page-extraction service
func NewWeb(cfg WebConfig, logger *zap.Logger) *Web {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Web{
		timeout:    cfg.Timeout,
		maxContent: cfg.MaxContent,
		client:     client,
		renderer:   cfg.Renderer,
		logger:     logger.Named("web"),
	}
}

// Capabilities lists what the service offers
func (w *Web) Capabilities() []string {
	caps := []string{"web_content_extraction", "page_title_extraction"}
	if w.renderer != nil {
		caps = append(caps, "javascript_rendering")
	}
	return caps
}

// NormalizeURL trims raw and prepends https:// when it has no scheme
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}

// Handle extracts the page at "url". An empty page yields StatusWarning.
func (w *Web) Handle(ctx context.Context, req models.Request) models.Result {
	target := NormalizeURL(req.Data.String(models.ParamURL, ""))
	if target == "" {
		return models.Failure("No URL provided")
	}

	page, err := w.Extract(ctx, target)
	if err != nil {
		w.logger.Warn("extraction failed", zap.String("url", target), zap.Error(err))
		return models.Failure(fmt.Sprintf("Extraction failed: %v", err))
	}
	if page.Content == "" {
		return models.Result{Status: models.StatusWarning, Message: "No content could be extracted", Data: page}
	}
	if page.Method == MethodBrowser {
		return models.Success(page, "Used fallback extraction method")
	}
	return models.Success(page, "Content extracted successfully")
}

// Extract fetches and converts a page. The browser is consulted only when the
// static HTML holds no text and a renderer is configured.
func (w *Web) Extract(ctx context.Context, target string) (models.PageContent, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	page := models.PageContent{URL: target, Method: MethodHTTP}

	title, text, fetchErr := w.fetch(ctx, target)
	if fetchErr == nil {
		page.Title, page.Content = title, text
	}

	if page.Content == "" && w.renderer != nil {
		rTitle, rText, err := w.renderer.Render(ctx, target)
		if err != nil {
			if fetchErr != nil {
				return page, fmt.Errorf("%w (browser fallback: %v)", fetchErr, err)
			}
			w.logger.Debug("browser fallback failed", zap.String("url", target), zap.Error(err))
		} else {
			page.Method = MethodBrowser
			page.Content = collapseSpace(rText)
			if page.Title == "" {
				page.Title = strings.TrimSpace(rTitle)
			}
			fetchErr = nil
		}
	}
	if fetchErr != nil {
		return page, fetchErr
	}

	page.Content = truncateRunes(page.Content, w.maxContent)
	page.Length = len([]rune(page.Content))
	return page, nil
}

func (w *Web) fetch(ctx context.Context, target string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", "", fmt.Errorf("failed to read response: %w", err)
	}

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/plain") {
		return "", collapseSpace(string(body)), nil
	}

	title, text, err := HTMLToText(string(body))
	if err != nil {
		return "", "", err
	}
	return title, text, nil
}

// Shutdown closes the browser, if one was started
func (w *Web) Shutdown(ctx context.Context) error {
	w.client.CloseIdleConnections()
	if w.renderer != nil {
		return w.renderer.Close()
	}
	return nil
}

// HTMLToText returns the page title and its visible text with whitespace collapsed.
// Scripts, styles and page chrome (nav, header, footer) are skipped.
func HTMLToText(page string) (string, string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var title string
	var sb strings.Builder

	var walk func(*html.Node, int)
	walk = func(n *html.Node, depth int) {
		if depth > 200 {
			return
		}
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "iframe", "svg", "nav", "footer", "header", "template":
				return
			case "title":
				if title == "" {
					title = nodeText(n)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth+1)
		}
	}
	walk(doc, 0)

	return title, collapseSpace(sb.String()), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
