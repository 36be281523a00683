package access

import "context"

type contextKey string

const grantKey contextKey = "cms.access.grant"

// WithGrant memoizes a resolved grant on the context for the rest of the
// request. Grants must not outlive the request they were resolved for.
func WithGrant(ctx context.Context, grant *Grant) context.Context {
	if ctx == nil || grant == nil {
		return ctx
	}
	return context.WithValue(ctx, grantKey, grant)
}

// GrantFromContext returns the memoized grant, or nil when none is set.
func GrantFromContext(ctx context.Context) *Grant {
	if ctx == nil {
		return nil
	}
	grant, _ := ctx.Value(grantKey).(*Grant)
	return grant
}

// Allowed reports whether the context's grant allows the permission key.
// A context without a grant denies everything.
func Allowed(ctx context.Context, key string) bool {
	return GrantFromContext(ctx).HasPermission(key)
}
