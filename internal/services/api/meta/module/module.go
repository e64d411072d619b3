// Package module mounts the meta endpoints
package module

import (
	"time"

	"judolguard/internal/core/cleaner"
	"judolguard/internal/core/version"
	"judolguard/internal/modkit"
	"judolguard/internal/modkit/httpkit"

	metahttp "judolguard/internal/services/api/meta/http"
)

// Ports are the optional injected dependencies of the meta module
type Ports struct {
	Cleaner *cleaner.Cleaner
}

// Module serves /meta
type Module struct {
	modkit.Base
	deps metahttp.Deps
}

// New builds the meta module. WithPorts(Ports) adds /meta/lexicon
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	base, b := modkit.NewBase([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)
	ports, _ := b.Ports.(Ports)
	m := &Module{Base: base, deps: metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		PG:          deps.PG,
		CH:          deps.CH,
		Cleaner:     ports.Cleaner,
	}}
	return m
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Ports implements modkit.Module, meta exports nothing
func (m *Module) Ports() any { return nil }
