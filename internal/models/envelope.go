// ABOUTME: Uniform response envelopes shared by handlers, services and the router
// ABOUTME: Result is what a capability returns; RoutedResponse is what callers receive
package models

// Status is the outcome of a handler, service, or routed call
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	// StatusWarning is reported by services that completed but produced nothing usable
	StatusWarning Status = "warning"
)

// Result is the envelope-like value every handler and service returns.
// Data carries a target-specific payload (see payloads.go); it may be set on
// StatusError results to expose the degraded fallback value.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK reports whether the result succeeded
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Success builds a successful result
func Success(data any, message string) Result {
	return Result{Status: StatusSuccess, Message: message, Data: data}
}

// Failure builds an error result without payload
func Failure(message string) Result {
	return Result{Status: StatusError, Message: message}
}

// Degraded builds an error result that still carries displayable fallback data
func Degraded(data any, message string) Result {
	return Result{Status: StatusError, Message: message, Data: data}
}

// RoutedResponse is the uniform envelope returned by the router.
// Invariants: Status == StatusError implies Data == nil; Text is never empty.
type RoutedResponse struct {
	RequestID     string `json:"request_id,omitempty"`
	Text          string `json:"text"`
	TargetUsed    string `json:"target_used"`
	OriginalQuery string `json:"original_query"`
	Status        Status `json:"status"`
	Message       string `json:"message"`
	Data          any    `json:"data,omitempty"`
}

// OK reports whether the routed call succeeded
func (r RoutedResponse) OK() bool {
	return r.Status == StatusSuccess
}
