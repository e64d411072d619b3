// Package net holds transport helpers shared by the HTTP stack: the request id
// on the context and the response envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores reqID where chi's RequestID middleware keeps it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the id set by chi or WithRequest
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }
