// Package middleware wraps the chi and go-chi/cors middlewares the API stack
// uses, plus the in-house access log and panic recovery
package middleware

import (
	"net/http"
	"time"

	"judolguard/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

type Middleware = func(http.Handler) http.Handler

// RequestID honours an incoming X-Request-Id or mints one, and hands it to the
// request scoped logger
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), chimw.GetReqID(r.Context()), "")
			next.ServeHTTP(w, r.WithContext(ctx))
		}))
	}
}

func RealIP() Middleware                 { return chimw.RealIP }
func NoCache() Middleware                { return chimw.NoCache }
func StripSlashes() Middleware           { return chimw.StripSlashes }
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }
func Heartbeat(path string) Middleware   { return chimw.Heartbeat(path) }
func Throttle(inflight int) Middleware   { return chimw.Throttle(inflight) }
func Compress(level int) Middleware      { return chimw.NewCompressor(level).Handler }

// CORSOptions is the part of go-chi/cors the API exposes. Empty methods and
// headers fall back to what the JSON endpoints need
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

func CORS(o CORSOptions) Middleware {
	if len(o.AllowedMethods) == 0 {
		o.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	if len(o.AllowedHeaders) == 0 {
		o.AllowedHeaders = []string{"Accept", "Content-Type", "X-Request-Id"}
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: o.AllowedMethods,
		AllowedHeaders: o.AllowedHeaders,
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         o.MaxAge,
	})
}
