// ABOUTME: Classification and target identifier types for the request router
// ABOUTME: Defines the four classification outcomes and the symbolic ids of every target
package models

// ClassificationKind represents the outcome of intent classification
type ClassificationKind string

const (
	// KindHandler - query maps to a text-processing handler
	KindHandler ClassificationKind = "handler"

	// KindService - query maps to a lookup service
	KindService ClassificationKind = "service"

	// KindComposite - query asks for search and synthesis → two-stage pipeline
	KindComposite ClassificationKind = "composite"

	// KindUnresolved - no target could be determined
	KindUnresolved ClassificationKind = "unresolved"
)

// Classification is the result of classifying a free-text query.
// Target is set only for KindHandler and KindService.
type Classification struct {
	Kind   ClassificationKind `json:"kind"`
	Target string             `json:"target,omitempty"`
}

// HandlerTarget builds a handler classification
func HandlerTarget(id string) Classification {
	return Classification{Kind: KindHandler, Target: id}
}

// ServiceTarget builds a service classification
func ServiceTarget(id string) Classification {
	return Classification{Kind: KindService, Target: id}
}

// TargetKind distinguishes handlers from lookup services in the registry
type TargetKind string

const (
	TargetHandler TargetKind = "handler"
	TargetService TargetKind = "service"
)

// Handler ids
const (
	HandlerGrammar   = "lektor"
	HandlerSentiment = "sentiment"
	HandlerOptimizer = "optimizer"
	HandlerQueryRef  = "query_ref"
)

// Service ids
const (
	ServiceSearch = "search"
	ServiceWeb    = "web"
	ServiceTime   = "time"
)

// DefaultHandler receives every query no keyword rule claims
const DefaultHandler = HandlerOptimizer

// Labels reported in RoutedResponse.TargetUsed for router-level outcomes
const (
	LabelRouter    = "InterfaceAgent"
	LabelComposite = "InterfaceAgent (Multi-Step)"
)
