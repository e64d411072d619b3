// Package service contains runs workflows
package service

import (
	"context"
	"math"
	"time"

	"judolguard/internal/modkit/repokit"
	perr "judolguard/internal/platform/errors"
	"judolguard/internal/services/api/runs/domain"
	"judolguard/internal/services/api/runs/repo"
)

// Service defines the service contract for runs
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new runs service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("runs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("runs.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Recent lists finished runs, latest first
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) ([]domain.Run, error) {
	rows, err := s.Repo.RecentRuns(ctx, in.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Run, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Run{
			RunID:           r.RunID,
			Source:          r.Source,
			StartedAt:       r.StartedAt.UTC().Format(time.RFC3339),
			FinishedAt:      r.FinishedAt.UTC().Format(time.RFC3339),
			Read:            r.Read,
			Written:         r.Written,
			DroppedEmpty:    r.DroppedEmpty,
			DroppedFiltered: r.DroppedFiltered,
			EmptyPct:        math.Round(r.EmptyRatio()*10000) / 100,
			StageFailures:   r.StageFailures,
			Options:         r.Options,
		})
	}
	return out, nil
}

// Report summarizes the per comment reports one run wrote to clickhouse
func (s *Svc) Report(ctx context.Context, in domain.ReportInput) (domain.Report, error) {
	top := in.TopBrands
	if top <= 0 {
		top = 10
	}

	t, err := s.Repo.Totals(ctx, in.RunID)
	if err != nil {
		return domain.Report{}, err
	}
	if t.Comments == 0 {
		return domain.Report{}, perr.WithField(perr.NotFoundf("no reports for run %q", in.RunID), "run_id")
	}

	sev, err := s.Repo.Severities(ctx, in.RunID)
	if err != nil {
		return domain.Report{}, err
	}
	brands, err := s.Repo.TopBrands(ctx, in.RunID, top)
	if err != nil {
		return domain.Report{}, err
	}

	out := domain.Report{
		RunID:        in.RunID,
		Comments:     int64(t.Comments),
		WithKeywords: int64(t.WithKeywords),
		AvgReduction: t.AvgReduction,
		MaxSeverity:  int(t.MaxSeverity),
		Severities:   make([]domain.SeverityCount, 0, len(sev)),
		Brands:       make([]domain.BrandCount, 0, len(brands)),
	}
	for _, r := range sev {
		out.Severities = append(out.Severities, domain.SeverityCount{Severity: int(r.Severity), Comments: int64(r.Comments)})
	}
	for _, r := range brands {
		out.Brands = append(out.Brands, domain.BrandCount{Brand: r.Brand, Comments: int64(r.Comments)})
	}
	return out, nil
}
