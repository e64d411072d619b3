package domain

import "context"

// ServicePort defines the service contract for cleaning over http
type ServicePort interface {
	Clean(ctx context.Context, in CleanInput) (CleanOutput, error)
	Batch(ctx context.Context, in BatchInput) (BatchOutput, error)
	Analyze(ctx context.Context, in CleanInput) (AnalyzeOutput, error)
	Trace(ctx context.Context, in CleanInput) (TraceOutput, error)
}
