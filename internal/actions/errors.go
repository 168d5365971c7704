package actions

import (
	"errors"
	"fmt"
)

// Registration errors. These surface at load time, before any provider
// instance exists, and are never silently ignored.
var (
	// ErrDuplicateAction indicates an action name registered twice on the
	// same provider type.
	ErrDuplicateAction = errors.New("duplicate action name")
	// ErrDuplicateProviderType indicates two registration sets claiming the
	// same provider type key.
	ErrDuplicateProviderType = errors.New("duplicate provider type")
	// ErrInvalidSpec indicates an action spec missing its name or schema.
	ErrInvalidSpec = errors.New("invalid action spec")
)

// ValidationError reports raw input that failed an action's schema contract.
// The underlying action method was not called.
type ValidationError struct {
	Action string
	Err    error
}

// Error describes the failed validation.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("action %q: invalid input: %v", e.Action, e.Err)
}

// Unwrap exposes the schema diagnostic.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CollisionError reports two providers in the same aggregate exposing the
// same action name. Flattening fails rather than dropping either action.
type CollisionError struct {
	Action string
	First  string
	Second string
}

// Error describes the colliding registration.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("action %q registered by both provider %q and provider %q", e.Action, e.First, e.Second)
}
