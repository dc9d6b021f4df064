// ABOUTME: Router resolves a request to a handler, a service or the composite pipeline
// ABOUTME: Every outcome, including failures and panics, leaves as a RoutedResponse envelope
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/agentrouter/internal/llm"
	"github.com/harper/agentrouter/internal/metrics"
	"github.com/harper/agentrouter/internal/models"
	"github.com/harper/agentrouter/internal/registry"
	"go.uber.org/zap"
)

const noQueryMessage = "No query provided"

// Options holds optional router dependencies
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Model is used for composite synthesis
	Model string
	// NewRequestID overrides uuid generation (tests)
	NewRequestID func() string
}

// Router is the single entry point for routed requests. It owns the registry
// and is safe for concurrent use.
type Router struct {
	registry *registry.Registry
	gen      llm.Generator
	model    string
	logger   *zap.Logger
	metrics  *metrics.Metrics
	newID    func() string
}

// NewRouter creates a router over a built registry
func NewRouter(reg *registry.Registry, gen llm.Generator, opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	newID := opts.NewRequestID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Router{
		registry: reg,
		gen:      gen,
		model:    opts.Model,
		logger:   logger.Named("router"),
		metrics:  opts.Metrics,
		newID:    newID,
	}
}

// Targets lists the registered targets
func (r *Router) Targets() []registry.Entry {
	return r.registry.List()
}

// Shutdown tears down every registered target
func (r *Router) Shutdown(ctx context.Context) {
	r.registry.Shutdown(ctx)
}

// Route handles one request. An explicit handler wins over an explicit service;
// with neither, the query is classified.
func (r *Router) Route(ctx context.Context, req models.RouteRequest) models.RoutedResponse {
	start := time.Now()
	id := r.newID()
	logger := r.logger.With(zap.String("request_id", id))

	resp, route := r.routeSafely(ctx, req, logger)

	resp.RequestID = id
	resp.OriginalQuery = req.Query
	if resp.Status != models.StatusSuccess {
		resp.Status = models.StatusError
		resp.Data = nil
	}
	if strings.TrimSpace(resp.Text) == "" {
		resp.Text = FailureText(orDefault(resp.TargetUsed, models.LabelRouter), resp.Message)
	}
	if resp.TargetUsed == "" {
		resp.TargetUsed = models.LabelRouter
	}

	elapsed := time.Since(start)
	r.metrics.ObserveRequest(resp.TargetUsed, string(resp.Status), elapsed)
	logger.Info("request routed",
		zap.String("route", route),
		zap.String("target", resp.TargetUsed),
		zap.String("status", string(resp.Status)),
		zap.Duration("duration", elapsed))

	return resp
}

// routeSafely converts a panic anywhere in routing into an error envelope
func (r *Router) routeSafely(ctx context.Context, req models.RouteRequest, logger *zap.Logger) (resp models.RoutedResponse, route string) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("panic during routing", zap.Any("panic", p), zap.Stack("stack"))
			err := fmt.Errorf("panic: %v", p)
			resp = r.failure(logger, models.LabelRouter, routeErr(models.ErrUpstreamFailure, "route", err),
				"Routing failed: "+err.Error(), "Fehler bei der Anfrageverarbeitung: "+err.Error())
		}
	}()
	return r.route(ctx, req, logger)
}

func (r *Router) route(ctx context.Context, req models.RouteRequest, logger *zap.Logger) (models.RoutedResponse, string) {
	query := req.Query
	if strings.TrimSpace(query) == "" {
		rerr := routeErr(models.ErrInvalidInput, "validate", errors.New(noQueryMessage))
		return r.failure(logger, models.LabelRouter, rerr, noQueryMessage, FailureText(models.LabelRouter, noQueryMessage)), "invalid"
	}

	if h := strings.TrimSpace(req.Handler); h != "" {
		return r.dispatch(ctx, models.TargetHandler, h, query, req.Parameters, logger), "explicit"
	}
	if s := strings.TrimSpace(req.Service); s != "" {
		return r.dispatch(ctx, models.TargetService, s, query, req.Parameters, logger), "explicit"
	}

	c := Classify(query)
	r.metrics.ObserveClassification(string(c.Kind))
	logger.Debug("classified", zap.String("kind", string(c.Kind)), zap.String("target", c.Target))

	switch c.Kind {
	case models.KindComposite:
		return r.composite(ctx, query, req.Parameters, logger), string(c.Kind)
	case models.KindHandler:
		return r.dispatch(ctx, models.TargetHandler, c.Target, query, req.Parameters, logger), string(c.Kind)
	case models.KindService:
		return r.dispatch(ctx, models.TargetService, c.Target, query, req.Parameters, logger), string(c.Kind)
	}

	rerr := routeErr(models.ErrTargetNotFound, "classify", errors.New("no target matches the query"))
	return r.failure(logger, models.LabelRouter, rerr, "Could not determine target", unresolvedText), string(c.Kind)
}

// dispatch adapts parameters, calls one target and aggregates its result
func (r *Router) dispatch(ctx context.Context, kind models.TargetKind, id, query string, params models.Parameters, logger *zap.Logger) models.RoutedResponse {
	entry, ok := r.registry.ResolveKind(kind, id)
	if !ok {
		label := registry.DefaultLabel(kind, id)
		err := fmt.Errorf("unknown %s %q", kind, id)
		text := fmt.Sprintf("Unbekannter Agent-Typ: %s", id)
		if kind == models.TargetService {
			text = fmt.Sprintf("Unbekannter Service-Typ: %s", id)
		}
		return r.failure(logger, label, routeErr(models.ErrTargetNotFound, "resolve", err), err.Error(), text)
	}

	res, err := safeHandle(ctx, entry.Instance, models.NewRequest(Adapt(id, query, params)))
	if err != nil {
		text := fmt.Sprintf("Fehler beim Aufruf von %s: %v", entry.Label, err)
		return r.failure(logger, entry.Label, routeErr(models.ErrUpstreamFailure, "dispatch", err), err.Error(), text)
	}
	if !res.OK() {
		rerr := routeErr(models.ErrUpstreamFailure, "dispatch", fmt.Errorf("%s: %s", res.Status, res.Message))
		return r.failure(logger, entry.Label, rerr, res.Message, FailureText(entry.Label, res.Message))
	}

	return models.RoutedResponse{
		Text:       SummaryText(res, query),
		TargetUsed: entry.Label,
		Status:     models.StatusSuccess,
		Message:    res.Message,
		Data:       res.Data,
	}
}

// failure is the single place where internal failures become user-facing envelopes
func (r *Router) failure(logger *zap.Logger, target string, rerr *RouteError, message, text string) models.RoutedResponse {
	logger.Warn("request failed", zap.String("target", target), zap.String("stage", rerr.Stage), zap.Error(rerr))
	return models.RoutedResponse{
		Text:       text,
		TargetUsed: target,
		Status:     models.StatusError,
		Message:    message,
	}
}

func safeHandle(ctx context.Context, c registry.Capability, req models.Request) (res models.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return c.Handle(ctx, req), nil
}

func safeGenerate(ctx context.Context, gen llm.Generator, p llm.Prompt) (resp llm.Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	if gen == nil {
		return llm.Response{}, errors.New("no generator configured")
	}
	return gen.Generate(ctx, p)
}
