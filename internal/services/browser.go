// ABOUTME: Headless Chrome renderer used as the page-extraction fallback
// ABOUTME: The browser is launched lazily on first use and reused until Close
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// RodRenderer renders pages with go-rod
type RodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *zap.Logger
}

// NewRodRenderer creates a renderer; no browser is started until Render is called
func NewRodRenderer(timeout time.Duration, logger *zap.Logger) *RodRenderer {
	return &RodRenderer{timeout: timeout, logger: logger.Named("browser")}
}

func (r *RodRenderer) ensureBrowser(ctx context.Context) (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().Headless(true)
	controlURL, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	r.launcher = l
	r.browser = browser
	r.logger.Debug("browser started")
	return browser, nil
}

// Render loads url and returns the document title and the body's visible text
func (r *RodRenderer) Render(ctx context.Context, url string) (string, string, error) {
	browser, err := r.ensureBrowser(ctx)
	if err != nil {
		return "", "", err
	}

	b := browser.Context(ctx)
	if r.timeout > 0 {
		b = b.Timeout(r.timeout)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", "", fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.WaitLoad(); err != nil {
		return "", "", fmt.Errorf("wait for load: %w", err)
	}

	var title string
	if info, err := page.Info(); err == nil {
		title = info.Title
	}

	body, err := page.Element("body")
	if err != nil {
		return title, "", fmt.Errorf("find body: %w", err)
	}
	text, err := body.Text()
	if err != nil {
		return title, "", fmt.Errorf("read body text: %w", err)
	}
	return title, text, nil
}

// Close shuts the browser down
func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.launcher.Kill()
	r.browser, r.launcher = nil, nil
	return err
}
