// ABOUTME: Wires configuration, logging, the model client, every target and the router
// ABOUTME: Shared by the route, serve, mcp and targets commands
package app

import (
	"context"
	"fmt"

	"github.com/harper/agentrouter/internal/config"
	"github.com/harper/agentrouter/internal/core"
	"github.com/harper/agentrouter/internal/handlers"
	"github.com/harper/agentrouter/internal/llm"
	"github.com/harper/agentrouter/internal/metrics"
	"github.com/harper/agentrouter/internal/models"
	"github.com/harper/agentrouter/internal/registry"
	"github.com/harper/agentrouter/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// App is a fully wired router process
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *prometheus.Registry
	Router  *core.Router
}

// New builds the app with an OpenAI-compatible client from cfg
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	client, err := llm.NewOpenAIClient(llm.ConfigFrom(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return NewWithGenerator(cfg, logger, client)
}

// NewWithGenerator builds the app around an existing generator
func NewWithGenerator(cfg *config.Config, logger *zap.Logger, gen llm.Generator) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg, err := buildRegistry(cfg, logger, gen)
	if err != nil {
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := core.NewRouter(reg, gen, core.Options{
		Logger:  logger,
		Metrics: metrics.New(promReg),
		Model:   cfg.ModelFor("interface"),
	})

	logger.Debug("router ready", zap.Int("targets", reg.Len()), zap.String("base_url", cfg.BaseURL))
	return &App{Config: cfg, Logger: logger, Metrics: promReg, Router: router}, nil
}

// Close shuts down every target
func (a *App) Close(ctx context.Context) {
	a.Router.Shutdown(ctx)
}

func buildRegistry(cfg *config.Config, logger *zap.Logger, gen llm.Generator) (*registry.Registry, error) {
	grammar := handlers.NewGrammar(gen, cfg.ModelFor(models.HandlerGrammar), logger)
	sentiment := handlers.NewSentiment(gen, cfg.ModelFor(models.HandlerSentiment), logger)
	optimizer := handlers.NewOptimizer(gen, cfg.ModelFor(models.HandlerOptimizer), logger)
	queryRef := handlers.NewQueryRef(logger)

	search := services.NewSearch(services.SearchConfig{
		BaseURL:    cfg.SearchBaseURL,
		Region:     cfg.SearchRegion,
		Timeout:    cfg.SearchTimeout,
		RatePerSec: cfg.SearchRatePerSec,
	}, logger)

	webCfg := services.WebConfig{Timeout: cfg.WebTimeout, MaxContent: cfg.WebMaxContent}
	if cfg.WebBrowserFallback {
		webCfg.Renderer = services.NewRodRenderer(cfg.WebTimeout, logger)
	}
	web := services.NewWeb(webCfg, logger)

	clock := services.NewClock(services.ClockConfig{Server: cfg.NTPServer, Timeout: cfg.NTPTimeout}, logger)

	return registry.NewBuilder().
		Register(registry.Entry{
			ID: models.HandlerGrammar, Kind: models.TargetHandler,
			Capabilities: grammar.Capabilities(),
			Description:  "Corrects spelling, grammar and punctuation",
			Instance:     grammar,
		}).
		Register(registry.Entry{
			ID: models.HandlerSentiment, Kind: models.TargetHandler,
			Capabilities: sentiment.Capabilities(),
			Description:  "Classifies sentiment with confidence, score and emotions",
			Instance:     sentiment,
		}).
		Register(registry.Entry{
			ID: models.HandlerOptimizer, Kind: models.TargetHandler,
			Capabilities: optimizer.Capabilities(),
			Description:  "Rewrites text in a requested tonality",
			Instance:     optimizer,
		}).
		Register(registry.Entry{
			ID: models.HandlerQueryRef, Kind: models.TargetHandler,
			Capabilities: queryRef.Capabilities(),
			Description:  "Makes search queries more specific",
			Instance:     queryRef,
		}).
		Register(registry.Entry{
			ID: models.ServiceSearch, Kind: models.TargetService,
			Capabilities: search.Capabilities(),
			Description:  "DuckDuckGo web and news search",
			Instance:     search,
		}).
		Register(registry.Entry{
			ID: models.ServiceWeb, Kind: models.TargetService,
			Capabilities: web.Capabilities(),
			Description:  "Extracts readable text from a web page",
			Instance:     web,
		}).
		Register(registry.Entry{
			ID: models.ServiceTime, Kind: models.TargetService,
			Capabilities: clock.Capabilities(),
			Description:  "Current date and time via NTP with local fallback",
			Instance:     clock,
		}).
		Build(logger)
}
