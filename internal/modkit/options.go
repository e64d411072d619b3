package modkit

import (
	"net/http"

	phttp "judolguard/internal/platform/net/http"
)

// Option configures a module at construction
type Option func(*buildCfg)

type buildCfg struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	ports     any
	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)
}

func WithName(name string) Option     { return func(c *buildCfg) { c.name = name } }
func WithPrefix(prefix string) Option { return func(c *buildCfg) { c.prefix = prefix } }

// WithMiddlewares appends mw, so repeated options stack in call order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts hands a module the ports it consumes. The concrete type belongs to that module
func WithPorts[T any](p T) Option { return func(c *buildCfg) { c.ports = p } }

// WithSubrouter wraps the module router before routes are registered
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(c *buildCfg) { c.subrouter = fn }
}

// WithRegister adds routes after the module's own
func WithRegister(fn func(phttp.Router)) Option { return func(c *buildCfg) { c.register = fn } }
