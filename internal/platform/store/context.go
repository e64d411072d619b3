package store

import (
	"context"

	"judolguard/internal/platform/logger"
)

type runKey struct{}

// WithRunID attaches a cleaning run id to the context, for the store and the logger
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = logger.WithRequest(ctx, "", runID)
	return context.WithValue(ctx, runKey{}, runID)
}

// RunID retrieves a run id from context if present
func RunID(ctx context.Context) (string, bool) {
	v := ctx.Value(runKey{})
	if v == nil {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}
