// ABOUTME: Router request and loosely-typed parameter map with typed accessors
// ABOUTME: Parameters arrive from CLI flags, JSON bodies and MCP arguments alike
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Parameter keys understood by the router
const (
	ParamText       = "text"
	ParamQuery      = "query"
	ParamTonality   = "tonality"
	ParamLanguage   = "language"
	ParamMaxResults = "max_results"
	ParamURL        = "url"
	ParamContext    = "context"
	ParamDetailed   = "detailed"
	ParamMode       = "mode"
)

// Parameters is a free-form mapping of request options
type Parameters map[string]any

// String returns the value for key as a string, or def if absent or empty
func (p Parameters) String(key, def string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return def
	}
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Int returns the value for key as an int, or def if absent or not numeric
func (p Parameters) Int(key string, def int) int {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i
		}
	}
	return def
}

// Bool returns the value for key as a bool, or def if absent or not boolean
func (p Parameters) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
	}
	return def
}

// RouteRequest is the input of Router.Route.
// Handler takes precedence over Service when both are set.
type RouteRequest struct {
	Query      string     `json:"query"`
	Handler    string     `json:"handler,omitempty"`
	Service    string     `json:"service,omitempty"`
	Parameters Parameters `json:"parameters,omitempty"`
}

// Request is what the router hands a handler or service: the adapted parameters only
type Request struct {
	Data Parameters `json:"data"`
}

// NewRequest builds a Request from adapted parameters
func NewRequest(data Parameters) Request {
	return Request{Data: data}
}
