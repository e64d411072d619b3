package repo

import (
	"context"
	"time"

	perr "judolguard/internal/platform/errors"
	"judolguard/internal/platform/store"
	"judolguard/internal/services/comments/domain"
)

// CHSchema creates the per-comment report table
const CHSchema = `
CREATE TABLE IF NOT EXISTS clean_reports (
	run_id           String,
	line             UInt32,
	comment_id       String,
	video_id         String,
	original_length  UInt32,
	cleaned_length   UInt32,
	reduction_ratio  Float64,
	original_words   UInt32,
	cleaned_words    UInt32,
	keyword_count    UInt32,
	keywords         Array(String),
	severity         UInt32,
	contains_judol   Bool,
	brands           Array(String),
	script           LowCardinality(String),
	mixed_script     Bool,
	styled_letters   UInt32,
	failed_stages    Array(String),
	created_at       DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (run_id, line)`

// ReportTable is the ClickHouse table the report sink appends to
const ReportTable = "clean_reports"

// CHReports writes one analysis row per cleaned comment to ClickHouse
type CHReports struct {
	ch     store.Clickhouse
	layout domain.Layout
	now    func() time.Time
}

var _ domain.SinkPort = (*CHReports)(nil)

// NewCHReports wraps a ClickHouse seam
func NewCHReports(ch store.Clickhouse) *CHReports {
	return &CHReports{ch: ch, now: time.Now}
}

// Name identifies the sink in logs
func (s *CHReports) Name() string { return "clickhouse" }

// Open creates the report table when missing
func (s *CHReports) Open(ctx context.Context, _ string, layout domain.Layout, _ bool) error {
	s.layout = layout
	if err := s.ch.Exec(ctx, CHSchema); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "ensure %s", ReportTable)
	}
	return nil
}

// Write appends the reports of one batch; records without an analysis are skipped
func (s *CHReports) Write(ctx context.Context, runID string, xs []domain.Cleaned) error {
	rows := reportRows(runID, s.layout, s.now().UTC(), xs)
	if len(rows) == 0 {
		return nil
	}
	if err := s.ch.Insert(ctx, ReportTable, rows); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert %d reports", len(rows))
	}
	return nil
}

// Close is a no-op; the connection belongs to the store
func (s *CHReports) Close(context.Context) error { return nil }

// reportRows lays out rows in CHSchema column order with the driver's exact types
func reportRows(runID string, l domain.Layout, at time.Time, xs []domain.Cleaned) [][]any {
	rows := make([][]any, 0, len(xs))
	for _, c := range xs {
		a := c.Analysis
		if a == nil {
			continue
		}
		terms := make([]string, 0, len(a.Keywords))
		for _, h := range a.Keywords {
			terms = append(terms, h.Term)
		}
		brands := a.Brands
		if brands == nil {
			brands = []string{}
		}
		failed := a.FailedStages
		if failed == nil {
			failed = []string{}
		}
		rows = append(rows, []any{
			runID,
			uint32(c.Record.Line),
			c.Record.Field(l.CommentID),
			c.Record.Field(l.VideoID),
			uint32(a.OriginalLength),
			uint32(a.CleanedLength),
			a.ReductionRatio,
			uint32(a.OriginalWords),
			uint32(a.CleanedWords),
			uint32(a.KeywordCount),
			terms,
			uint32(a.Severity),
			a.ContainsJudolKeywords,
			brands,
			a.Script,
			a.MixedScript,
			uint32(a.StyledLetters),
			failed,
			at,
		})
	}
	return rows
}
