// Package module mounts the run history endpoints
package module

import (
	"judolguard/internal/modkit"
	"judolguard/internal/modkit/httpkit"

	runshttp "judolguard/internal/services/api/runs/http"
	runsrepo "judolguard/internal/services/api/runs/repo"
	runssvc "judolguard/internal/services/api/runs/service"
)

// Module serves /runs
type Module struct {
	modkit.Base
	svc runssvc.Service
}

// New builds the runs module. deps.PG is required, deps.CH enables reports
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	base, _ := modkit.NewBase([]modkit.Option{modkit.WithName("runs"), modkit.WithPrefix("/runs")}, opts...)
	return &Module{Base: base, svc: runssvc.New(deps.PG, runsrepo.NewHybrid(deps.CH))}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { runshttp.Register(rr, m.svc) })
}
