package http

import "net/http"

// Handler is the handler shape every route takes
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount against. The API only serves GET and POST
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(pattern string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(pattern string, fn func(Router))
	Mux() http.Handler
}
