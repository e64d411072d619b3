package http

import (
	"net/http"

	"judolguard/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates a T from the body, calls fn and wraps the
// result in the envelope. fn may return a Response to pick its own status
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return Result(fn(r, in))
	})
}

// Result turns a handler's (value, error) pair into a Response
func Result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
