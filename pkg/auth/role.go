// Package auth resolves the caller's role from the request. The role header
// is a deliberate demo simplification; a production deployment would verify a
// session or token instead of trusting a client-chosen value.
package auth

import (
	"context"
	"net/http"
)

type Role string

const (
	RoleViewer Role = "viewer"
	RoleAdmin  Role = "admin"
)

const (
	// HeaderKey carries the role on API requests.
	HeaderKey = "x-role"
	// QueryKey is the fallback for clients that cannot set headers.
	QueryKey = "role"
)

func (r Role) Valid() bool {
	return r == RoleViewer || r == RoleAdmin
}

// FromRequest resolves the role with precedence header > query > default
// viewer. Unknown values fall back to the least-privileged role.
func FromRequest(r *http.Request) Role {
	if role := Role(r.Header.Get(HeaderKey)); role.Valid() {
		return role
	}
	if role := Role(r.URL.Query().Get(QueryKey)); role.Valid() {
		return role
	}
	return RoleViewer
}

type contextKey struct{}

// WithRole stores the resolved role on the request context.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, contextKey{}, role)
}

// FromContext returns the role placed by the middleware, defaulting to
// viewer when absent.
func FromContext(ctx context.Context) Role {
	if role, ok := ctx.Value(contextKey{}).(Role); ok {
		return role
	}
	return RoleViewer
}
