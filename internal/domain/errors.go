package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and adapters.
var (
	// ErrInvalidInput marks requests rejected before any planning work starts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRangeExceeded signals an overdraft inside the range model. The stop
	// planner verifies reachability before consuming range, so this escaping
	// the planner indicates a planning bug.
	ErrRangeExceeded = errors.New("range exceeded")

	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")
)

// ProviderErrorKind classifies failures of external collaborators.
type ProviderErrorKind string

const (
	ProviderUnavailable       ProviderErrorKind = "unavailable"
	ProviderTimeout           ProviderErrorKind = "timeout"
	ProviderMalformedResponse ProviderErrorKind = "malformed_response"
)

// ProviderError wraps a failure from an external data provider so callers can
// tell "the upstream is down" apart from "the trip cannot be driven".
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s provider %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s provider %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
