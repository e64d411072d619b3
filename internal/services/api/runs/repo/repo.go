// Package repo reads finished runs from postgres and their reports from clickhouse
package repo

import (
	"context"

	"judolguard/internal/modkit/repokit"
	perr "judolguard/internal/platform/errors"
	"judolguard/internal/platform/store"
	commentsdom "judolguard/internal/services/comments/domain"
	commentsrepo "judolguard/internal/services/comments/repo"
)

// Repo is the persistence surface for runs
type Repo interface {
	RecentRuns(ctx context.Context, limit int) ([]commentsdom.Summary, error)
	Totals(ctx context.Context, runID string) (Totals, error)
	Severities(ctx context.Context, runID string) ([]SeverityRow, error)
	TopBrands(ctx context.Context, runID string, limit int) ([]BrandRow, error)
}

// Totals is the headline aggregate of one run's reports
type Totals struct {
	Comments     uint64
	WithKeywords uint64
	AvgReduction float64
	MaxSeverity  uint32
}

// SeverityRow is one severity bucket
type SeverityRow struct {
	Severity uint32
	Comments uint64
}

// BrandRow is one brand bucket
type BrandRow struct {
	Brand    string
	Comments uint64
}

// NewHybrid binds run listing to postgres and report queries to ch, which may be nil
func NewHybrid(ch store.Clickhouse) repokit.Binder[Repo] { return &hybridBinder{ch: ch} }

type hybridBinder struct{ ch store.Clickhouse }

// Bind binds a Queryer to produce a Repo
func (b *hybridBinder) Bind(q repokit.Queryer) Repo {
	return &hybridStore{runs: commentsrepo.NewPG().Bind(q), ch: b.ch}
}

type hybridStore struct {
	runs commentsdom.RunStore
	ch   store.Clickhouse
}

func (s *hybridStore) RecentRuns(ctx context.Context, limit int) ([]commentsdom.Summary, error) {
	return s.runs.RecentRuns(ctx, limit)
}

func (s *hybridStore) query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	if s.ch == nil {
		return nil, perr.Unavailablef("clickhouse reports are not configured")
	}
	rs, err := s.ch.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "query %s", commentsrepo.ReportTable)
	}
	return rs, nil
}

func (s *hybridStore) Totals(ctx context.Context, runID string) (Totals, error) {
	rs, err := s.query(ctx, `
		SELECT
			count()                                  AS comments,
			countIf(contains_judol)                  AS with_keywords,
			ifNotFinite(avg(reduction_ratio), 0)     AS avg_reduction,
			max(severity)                            AS max_severity
		FROM clean_reports
		WHERE run_id = ?`, runID)
	if err != nil {
		return Totals{}, err
	}
	defer rs.Close()

	var t Totals
	if rs.Next() {
		if err := rs.Scan(&t.Comments, &t.WithKeywords, &t.AvgReduction, &t.MaxSeverity); err != nil {
			return Totals{}, err
		}
	}
	return t, rs.Err()
}

func (s *hybridStore) Severities(ctx context.Context, runID string) ([]SeverityRow, error) {
	rs, err := s.query(ctx, `
		SELECT severity, count() AS comments
		FROM clean_reports
		WHERE run_id = ?
		GROUP BY severity
		ORDER BY severity`, runID)
	if err != nil {
		return nil, err
	}
	return store.Collect(rs, func(r store.Row) (SeverityRow, error) {
		var sr SeverityRow
		err := r.Scan(&sr.Severity, &sr.Comments)
		return sr, err
	})
}

func (s *hybridStore) TopBrands(ctx context.Context, runID string, limit int) ([]BrandRow, error) {
	rs, err := s.query(ctx, `
		SELECT brand, count() AS comments
		FROM clean_reports
		ARRAY JOIN brands AS brand
		WHERE run_id = ?
		GROUP BY brand
		ORDER BY comments DESC, brand
		LIMIT ?`, runID, limit)
	if err != nil {
		return nil, err
	}
	return store.Collect(rs, func(r store.Row) (BrandRow, error) {
		var br BrandRow
		err := r.Scan(&br.Brand, &br.Comments)
		return br, err
	})
}
