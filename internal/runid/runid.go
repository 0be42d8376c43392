// Package runid tags a pipeline invocation with a unique identifier so log
// lines from one run can be correlated after the fact.
package runid

import (
	"context"

	"github.com/google/uuid"
)

type key int

const runIDKey key = 0

// New generates a fresh run identifier.
func New() string {
	return uuid.New().String()
}

func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// FromContext returns the run identifier, or "" when the context carries
// none.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}
