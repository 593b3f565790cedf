// Package utils provides small helpers shared across the application:
// type-safe context keys, JSON response writing, JWT token handling, and
// identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages that may
// store string-keyed values in the same context.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// CallerCtxKey is the key under which the authenticated caller's subject is
// stored in the request context by the auth middleware.
var CallerCtxKey = contextKey("caller")

// GetCallerFromContext retrieves the authenticated caller subject from the
// context. ok is false when no caller was stored or the value has an
// unexpected type.
func GetCallerFromContext(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(CallerCtxKey).(string)
	return caller, ok
}
