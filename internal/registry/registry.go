// ABOUTME: Process-lifetime registry mapping symbolic ids to handler and service instances
// ABOUTME: Populated once through a Builder; read-only and safe for concurrent lookups afterwards
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/agentrouter/internal/models"
	"go.uber.org/zap"
)

// Capability is implemented by every handler and service
type Capability interface {
	Handle(ctx context.Context, req models.Request) models.Result
	Shutdown(ctx context.Context) error
}

// Entry describes one registered target
type Entry struct {
	ID           string            `json:"id"`
	Kind         models.TargetKind `json:"kind"`
	Label        string            `json:"label"`
	Capabilities []string          `json:"capabilities"`
	Description  string            `json:"description"`
	Instance     Capability        `json:"-"`
}

var (
	ErrEmptyID     = errors.New("registry: empty id")
	ErrDuplicateID = errors.New("registry: duplicate id")
	ErrNilInstance = errors.New("registry: nil instance")
	ErrInvalidKind = errors.New("registry: invalid kind")
)

// DefaultLabel is the display label for a target: "lektorAgent", "searchService".
func DefaultLabel(kind models.TargetKind, id string) string {
	if kind == models.TargetService {
		return id + "Service"
	}
	return id + "Agent"
}

// Builder collects entries before the registry is sealed
type Builder struct {
	entries map[string]Entry
	err     error
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]Entry)}
}

// Register adds an entry. The first validation error is kept and returned by Build.
func (b *Builder) Register(e Entry) *Builder {
	if b.err != nil {
		return b
	}

	e.ID = strings.TrimSpace(e.ID)
	switch {
	case e.ID == "":
		b.err = ErrEmptyID
	case e.Instance == nil:
		b.err = fmt.Errorf("%w: %s", ErrNilInstance, e.ID)
	case e.Kind != models.TargetHandler && e.Kind != models.TargetService:
		b.err = fmt.Errorf("%w: %q for %s", ErrInvalidKind, e.Kind, e.ID)
	}
	if b.err != nil {
		return b
	}

	if _, exists := b.entries[e.ID]; exists {
		b.err = fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		return b
	}
	if e.Label == "" {
		e.Label = DefaultLabel(e.Kind, e.ID)
	}
	e.Capabilities = append([]string(nil), e.Capabilities...)
	b.entries[e.ID] = e
	return b
}

// Build seals the registry
func (b *Builder) Build(logger *zap.Logger) (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	entries := make(map[string]Entry, len(b.entries))
	for id, e := range b.entries {
		entries[id] = e
	}
	return &Registry{entries: entries, logger: logger}, nil
}

// Registry is the read-only id → instance mapping
type Registry struct {
	entries map[string]Entry
	logger  *zap.Logger
}

// Resolve looks up an entry by id
func (r *Registry) Resolve(id string) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// ResolveKind looks up an entry by id and requires it to be of the given kind
func (r *Registry) ResolveKind(kind models.TargetKind, id string) (Entry, bool) {
	e, ok := r.Resolve(id)
	if !ok || e.Kind != kind {
		return Entry{}, false
	}
	return e, true
}

// List returns all entries sorted by kind, then id
func (r *Registry) List() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of registered targets
func (r *Registry) Len() int {
	return len(r.entries)
}

// Shutdown calls Shutdown on every entry. Errors are logged and never returned;
// a failing entry does not stop the others.
func (r *Registry) Shutdown(ctx context.Context) {
	for _, e := range r.List() {
		if err := shutdownEntry(ctx, e); err != nil {
			r.logger.Warn("shutdown failed",
				zap.String("target", e.ID),
				zap.Error(err))
			continue
		}
		r.logger.Debug("target shut down", zap.String("target", e.ID))
	}
}

func shutdownEntry(ctx context.Context, e Entry) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during shutdown: %v", p)
		}
	}()
	return e.Instance.Shutdown(ctx)
}
