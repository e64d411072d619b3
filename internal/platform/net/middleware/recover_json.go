package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "judolguard/internal/platform/errors"
	"judolguard/internal/platform/logger"
	pnet "judolguard/internal/platform/net"
)

// RecoverJSON turns a handler panic into a 500 envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			pnet.Write(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
