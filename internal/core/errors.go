// ABOUTME: RouteError ties a taxonomy kind to the pipeline stage where it occurred
// ABOUTME: errors.Is matches both the kind sentinel and the underlying cause
package core

import (
	"fmt"
)

// RouteError is an internal routing failure before it becomes an envelope
type RouteError struct {
	// Kind is one of the models.Err* sentinels
	Kind  error
	Stage string
	Err   error
}

func (e *RouteError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *RouteError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func routeErr(kind error, stage string, err error) *RouteError {
	return &RouteError{Kind: kind, Stage: stage, Err: err}
}
