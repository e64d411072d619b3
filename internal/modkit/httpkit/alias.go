// Package httpkit is the routing surface modules build on. It re-exports the
// platform router and adds JSON route helpers and the API middleware stack
package httpkit

import phttp "judolguard/internal/platform/net/http"

type (
	Router   = phttp.Router
	Handler  = phttp.Handler
	Response = phttp.Response
)
