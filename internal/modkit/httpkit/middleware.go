package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"judolguard/internal/platform/net/middleware"
)

// StackOptions tunes CommonStackWith. Zero values take the defaults
type StackOptions struct {
	CORS        middleware.CORSOptions
	Timeout     time.Duration // per request, default 30s
	Slow        time.Duration // access log warns above this, default 500ms
	MaxInFlight int           // concurrent requests before 429, 0 is unlimited
}

// CommonStack is CommonStackWith the defaults
func CommonStack() []func(http.Handler) http.Handler {
	return CommonStackWith(StackOptions{})
}

// CommonStackWith is the middleware chain in front of every /api/v1 route,
// outermost first
func CommonStackWith(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = 500 * time.Millisecond
	}
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.NoCache(),
		middleware.CORS(o.CORS),
		middleware.Heartbeat("/health"),
	}
	if o.MaxInFlight > 0 {
		stack = append(stack, middleware.Throttle(o.MaxInFlight))
	}
	return append(stack,
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	)
}
