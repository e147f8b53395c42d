package router

import (
	"errors"
	"fmt"
)

// Sentinel errors for pattern parsing and route registration. Callers
// check these with errors.Is; the structured types below carry the
// offending pattern for context.
var (
	ErrEmptyPattern       = errors.New("empty pattern")
	ErrPatternNotRooted   = errors.New("pattern must start with /")
	ErrEmptyParamName     = errors.New("empty parameter name")
	ErrDuplicateParamName = errors.New("duplicate parameter name")
	ErrWildcardNotLast    = errors.New("wildcard must be the last segment")
	ErrDuplicateRoute     = errors.New("duplicate route")
	ErrWildcardConflict   = errors.New("conflicting wildcard name")
	ErrParamNameConflict  = errors.New("conflicting parameter name")
	ErrTableFrozen        = errors.New("route table is frozen")
)

// PatternError reports an invalid route pattern.
type PatternError struct {
	Pattern string
	Cause   error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PatternError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *PatternError) Is(target error) bool {
	_, ok := target.(*PatternError)
	return ok || errors.Is(e.Cause, target)
}

// ConflictError reports a registration that collides with a previously
// registered route.
type ConflictError struct {
	Pattern  string
	Existing string
	Cause    error
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Existing != "" {
		return fmt.Sprintf("cannot register %q: %v with %q", e.Pattern, e.Cause, e.Existing)
	}
	return fmt.Sprintf("cannot register %q: %v", e.Pattern, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ConflictError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ConflictError) Is(target error) bool {
	_, ok := target.(*ConflictError)
	return ok || errors.Is(e.Cause, target)
}
