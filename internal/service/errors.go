package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so login failures never reveal which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated means the presented token is missing, malformed,
	// expired or revoked.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrContactNotFound covers both a nonexistent contact and a contact
	// owned by a different user; callers cannot tell them apart.
	ErrContactNotFound = errors.New("contact not found")

	// ErrSearchTermRequired is returned before any store access when the
	// search query is empty.
	ErrSearchTermRequired = errors.New("search term required")
)

// ValidationError carries field-level messages for client-correctable input
// errors, keyed by the JSON field name.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// merge folds other's messages into e and returns e. Accepts nil on either
// side so call sites can chain checks without branching.
func (e *ValidationError) merge(other *ValidationError) *ValidationError {
	if other == nil {
		return e
	}
	if e == nil {
		return other
	}
	for field, messages := range other.Fields {
		e.Fields[field] = append(e.Fields[field], messages...)
	}
	return e
}
