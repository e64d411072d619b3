package module

import (
	"context"

	runsdom "judolguard/internal/services/api/runs/domain"
	runssvc "judolguard/internal/services/api/runs/service"
)

// Ports implements modkit.Module with a runsdom.ServicePort
func (m *Module) Ports() any { return adaptRunsPort{svc: m.svc} }

var _ runsdom.ServicePort = adaptRunsPort{}

// adaptRunsPort adapts the runs service to the domain port interface
type adaptRunsPort struct{ svc runssvc.Service }

// Recent implements the domain ServicePort interface
func (a adaptRunsPort) Recent(ctx context.Context, in runsdom.RecentInput) ([]runsdom.Run, error) {
	return a.svc.Recent(ctx, in)
}

// Report implements the domain ServicePort interface
func (a adaptRunsPort) Report(ctx context.Context, in runsdom.ReportInput) (runsdom.Report, error) {
	return a.svc.Report(ctx, in)
}
