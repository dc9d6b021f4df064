// ABOUTME: HTTP surface for the router built on gin
// ABOUTME: POST /v1/route returns the routed envelope; also serves targets, health and metrics
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/agentrouter/internal/models"
	"github.com/harper/agentrouter/internal/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Router is the part of core.Router the HTTP surface needs
type Router interface {
	Route(ctx context.Context, req models.RouteRequest) models.RoutedResponse
	Targets() []registry.Entry
}

// RouteBody is the JSON body of POST /v1/route
type RouteBody struct {
	Query      string            `json:"query"`
	Handler    string            `json:"handler,omitempty"`
	Service    string            `json:"service,omitempty"`
	Parameters models.Parameters `json:"parameters,omitempty"`
}

// Handlers holds the HTTP handlers
type Handlers struct {
	router Router
	logger *zap.Logger
}

// NewHandlers creates handlers over a router
func NewHandlers(router Router, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{router: router, logger: logger}
}

// HandleRoute decodes a request and answers with its envelope.
// Error envelopes are still HTTP 200; only undecodable bodies are 400.
func (h *Handlers) HandleRoute(c *gin.Context) {
	var body RouteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp := h.router.Route(c.Request.Context(), models.RouteRequest{
		Query:      body.Query,
		Handler:    body.Handler,
		Service:    body.Service,
		Parameters: body.Parameters,
	})
	c.JSON(http.StatusOK, resp)
}

// HandleTargets lists the registered targets
func (h *Handlers) HandleTargets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"targets": h.router.Targets()})
}

// HandleHealth reports liveness and the number of registered targets
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "targets": len(h.router.Targets())})
}

// RegisterRoutes registers the /v1 endpoints:
//
//	POST /v1/route   - route a request
//	GET  /v1/targets - list registered targets
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/route", h.HandleRoute)
	rg.GET("/targets", h.HandleTargets)
}

// NewEngine builds the gin engine with recovery, access logging, health and metrics
func NewEngine(router Router, gatherer prometheus.Gatherer, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := NewHandlers(router, logger)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(accessLog(logger))

	engine.GET("/healthz", h.HandleHealth)
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	RegisterRoutes(engine.Group("/v1"), h)
	return engine
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// Serve runs the engine on addr until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
