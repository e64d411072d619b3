package modkit

import (
	"net/http"

	"judolguard/internal/modkit/httpkit"
	str "judolguard/internal/platform/strings"
)

// Base is the routing half of an API module: name, prefix, middlewares and the
// option hooks. Modules embed it and add MountRoutes and Ports
type Base struct {
	name, prefix string
	mws          []func(http.Handler) http.Handler
	subrouter    func(httpkit.Router) httpkit.Router
	hook         func(httpkit.Router)
}

// NewBase applies opts over defaults and keeps what routing needs. The result is
// returned too so callers can read Ports
func NewBase(defaults []Option, opts ...Option) (Base, Built) {
	b := Build(append(defaults, opts...)...)
	return Base{name: b.Name, prefix: b.Prefix, mws: b.Mw, subrouter: b.Subrouter, hook: b.Register}, b
}

// Name panics when the module was built without one
func (m Base) Name() string { return str.MustString(m.name, "module name") }

// Prefix is the normalized mount path, it panics when empty
func (m Base) Prefix() string { return str.MustPrefix(m.prefix) }

func (m Base) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Mount routes register under Prefix behind the module middlewares, followed by
// any WithRegister hook
func (m Base) Mount(r httpkit.Router, register func(httpkit.Router)) {
	m.MountAt(r, m.Prefix(), func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		register(rr)
		if m.hook != nil {
			m.hook(rr)
		}
	})
}

// MountAt routes fn under an extra prefix owned by the same module
func (m Base) MountAt(r httpkit.Router, prefix string, fn func(httpkit.Router)) {
	httpkit.Scope(r, prefix, m.mws, fn)
}
