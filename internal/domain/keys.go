package domain

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when a principal is required but none is
// bound to the request context.
var ErrUnauthenticated = errors.New("not authenticated")

// Principal is the identity resolved from a verified bearer token. It is the
// token's claim set, not a fresh store lookup; handlers that need the current
// account record re-resolve it by AccountID.
type Principal struct {
	AccountID int64
	Email     string
	Role      Role
	Authority string
}

type ctxKey struct{}

// WithPrincipal binds a principal into the request context. There is no
// default principal and no process-wide holder; each request carries its own.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the bound principal, or ErrUnauthenticated
// when the request never presented a valid token.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}
