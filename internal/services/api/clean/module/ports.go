package module

import (
	"context"

	cleandom "judolguard/internal/services/api/clean/domain"
	cleansvc "judolguard/internal/services/api/clean/service"
)

// Ports implements modkit.Module with a cleandom.ServicePort
func (m *Module) Ports() any { return adaptCleanPort{svc: m.svc} }

var _ cleandom.ServicePort = adaptCleanPort{}

// adaptCleanPort adapts the clean service to the domain port interface
type adaptCleanPort struct{ svc cleansvc.Service }

// Clean implements the domain ServicePort interface
func (a adaptCleanPort) Clean(ctx context.Context, in cleandom.CleanInput) (cleandom.CleanOutput, error) {
	return a.svc.Clean(ctx, in)
}

// Batch implements the domain ServicePort interface
func (a adaptCleanPort) Batch(ctx context.Context, in cleandom.BatchInput) (cleandom.BatchOutput, error) {
	return a.svc.Batch(ctx, in)
}

// Analyze implements the domain ServicePort interface
func (a adaptCleanPort) Analyze(ctx context.Context, in cleandom.CleanInput) (cleandom.AnalyzeOutput, error) {
	return a.svc.Analyze(ctx, in)
}

// Trace implements the domain ServicePort interface
func (a adaptCleanPort) Trace(ctx context.Context, in cleandom.CleanInput) (cleandom.TraceOutput, error) {
	return a.svc.Trace(ctx, in)
}
