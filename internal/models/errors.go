// ABOUTME: Failure taxonomy shared by handlers, services and the router
// ABOUTME: Only the router turns these into user-facing envelopes
package models

import "errors"

var (
	// ErrInvalidInput - empty or missing required field
	ErrInvalidInput = errors.New("invalid input")

	// ErrTargetNotFound - symbolic id not in the registry
	ErrTargetNotFound = errors.New("target not found")

	// ErrUpstreamFailure - a handler, service or the generator failed
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrEmptyResult - search succeeded with zero results where results are required
	ErrEmptyResult = errors.New("empty result")

	// ErrParseFailure - structured model output did not parse; always recovered locally
	ErrParseFailure = errors.New("parse failure")
)
