package domain

import "context"

// ServicePort defines the service contract for runs
type ServicePort interface {
	Recent(ctx context.Context, in RecentInput) ([]Run, error)
	Report(ctx context.Context, in ReportInput) (Report, error)
}
