// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import (
	"context"
	"os"
	"os/user"
)

// operatorKey is the context key for the operator name.
type operatorKey struct{}

// WithOperator returns a context with the operator name embedded.
func WithOperator(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operatorKey{}, name)
}

// OperatorFromContext returns the operator name from context, or empty string if not set.
func OperatorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(operatorKey{}).(string); ok {
		return v
	}
	return ""
}

// CurrentOperator names the person running the process: $SE_OPERATOR, then
// the login name.
func CurrentOperator() string {
	if name := os.Getenv("SE_OPERATOR"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
