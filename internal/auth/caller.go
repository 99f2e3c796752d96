package auth

import (
	"context"

	apperrors "volunteerhub/internal/errors"
)

// Caller is the resolved identity of whoever invoked an operation.
type Caller struct {
	ID    string
	Email string
}

type callerKey struct{}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller stored in ctx, if any.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || c.ID == "" {
		return Caller{}, false
	}
	return c, true
}

// Require returns the caller or an unauthenticated AuthorizationError.
func Require(ctx context.Context) (Caller, error) {
	c, ok := CallerFrom(ctx)
	if !ok {
		return Caller{}, apperrors.Unauthenticated()
	}
	return c, nil
}

// Policy is the procedure kind of an operation.
type Policy int

const (
	// Public operations run for anonymous callers.
	Public Policy = iota
	// Protected operations need a resolved caller.
	Protected
)

// Authorize evaluates the gate for an operation with policy p. It runs
// before any input validation.
func Authorize(ctx context.Context, p Policy) error {
	if p == Public {
		return nil
	}
	_, err := Require(ctx)
	return err
}

// CreatePolicy returns the policy for create operations that are open by
// default and protected in strict mode.
func CreatePolicy(strict bool) Policy {
	if strict {
		return Protected
	}
	return Public
}
