// Package module mounts the cleaning endpoints
package module

import (
	"judolguard/internal/core/cleaner"
	"judolguard/internal/modkit"
	"judolguard/internal/modkit/httpkit"

	cleanhttp "judolguard/internal/services/api/clean/http"
	cleansvc "judolguard/internal/services/api/clean/service"
)

// Ports declares the injected Cleaner this API module serves
type Ports struct {
	Cleaner *cleaner.Cleaner
}

// Module serves its prefix for cleaning and /analyze for the analysis endpoint,
// both behind the same middlewares
type Module struct {
	modkit.Base
	svc cleansvc.Service
}

// New builds the clean API module. It panics without WithPorts(Ports)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	base, b := modkit.NewBase([]modkit.Option{modkit.WithName("clean"), modkit.WithPrefix("/clean")}, opts...)
	ports, ok := b.Ports.(Ports)
	if !ok || ports.Cleaner == nil {
		panic("clean api module: expected WithPorts(Ports) with a Cleaner")
	}
	log := deps.Log.With().Str("component", "clean-api").Logger()
	return &Module{Base: base, svc: cleansvc.New(ports.Cleaner, FromConfig(deps.Cfg), &log)}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { cleanhttp.Register(rr, m.svc) })
	m.MountAt(r, "/analyze", func(rr httpkit.Router) { cleanhttp.RegisterAnalyze(rr, m.svc) })
}
