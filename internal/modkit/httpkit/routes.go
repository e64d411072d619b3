package httpkit

import (
	"net/http"
	"strings"
)

// Scope routes fn under prefix behind mw
func Scope(r Router, prefix string, mw []func(http.Handler) http.Handler, fn func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		fn(sub)
	})
}

// MountAPI scopes fn under /api/{version}
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//		clean.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, fn func(Router)) {
	Scope(r, "/api/"+strings.TrimPrefix(version, "/"), mw, fn)
}

func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, fn func(Router)) {
	MountAPI(r, "v1", mw, fn)
}
