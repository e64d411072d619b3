package httpkit

import (
	"net/http"

	phttp "judolguard/internal/platform/net/http"
)

// PostJSON routes POST path to h with a decoded and validated T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get routes GET path to a handler that reads no body
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Handle(func(req *http.Request) Response { return phttp.Result(h(req)) }))
}
