// Package http adapts chi to the API: routing, the server lifecycle and
// return-style handlers that answer with the JSON envelope
package http

import (
	stdhttp "net/http"

	pnet "judolguard/internal/platform/net"
)

// Envelope is the body of every response
type Envelope = pnet.Wire

// Response is returned by return-style handlers. An error Body is written as
// an error envelope with the status its code maps to
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error answers with err
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response-returning func to net/http
func Handle(h func(*stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		status, body := pnet.Error(err, reqID)
		pnet.Write(w, status, body)
		return
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	pnet.Write(w, status, pnet.Reply(status, resp.Body, reqID))
}
