package modkit

import (
	"net/http"

	"judolguard/internal/modkit/httpkit"
)

// Built is the resolved option set
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	Subrouter func(httpkit.Router) httpkit.Router // identity when unset
	Register  func(httpkit.Router)                // no-op when unset
}

// Build applies opts in order. Later options win, middlewares accumulate
func Build(opts ...Option) Built {
	c := buildCfg{
		subrouter: func(r httpkit.Router) httpkit.Router { return r },
		register:  func(httpkit.Router) {},
	}
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}
