package roles

import "context"

type contextKey struct{}

// WithRole returns a context carrying the resolved role name.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, contextKey{}, role)
}

// FromContext extracts the role carried in the context, if any.
func FromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(contextKey{}).(string)
	return role, ok && role != ""
}
