package domain

import "context"

// RunnerPort is the external port for the cleaning job
type RunnerPort interface {
	Run(ctx context.Context, in Input) (Summary, error)
}

// SourcePort yields input records in file order
type SourcePort interface {
	Header() []string
	// Next returns up to n records and io.EOF once the input is drained.
	// A final short batch may come together with io.EOF
	Next(ctx context.Context, n int) ([]Record, error)
	Close() error
}

// SinkPort receives every batch of surviving records, in input order
type SinkPort interface {
	Name() string
	Open(ctx context.Context, runID string, layout Layout, keepRaw bool) error
	Write(ctx context.Context, runID string, xs []Cleaned) error
	Close(ctx context.Context) error
}

// RunStore records finished runs and lists recent ones
type RunStore interface {
	SaveRun(ctx context.Context, s Summary) error
	RecentRuns(ctx context.Context, limit int) ([]Summary, error)
}

// Ports are dependencies injected into the comments module
type Ports struct {
	Source SourcePort // required
	Sinks  []SinkPort // at least one
	Runs   RunStore   // optional
}
