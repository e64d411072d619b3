package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"judolguard/internal/modkit/repokit"
	perr "judolguard/internal/platform/errors"
	"judolguard/internal/platform/store"
	"judolguard/internal/services/comments/domain"

	"github.com/cenkalti/backoff/v4"
)

// PGSchema creates the tables the Postgres sink and run store use
const PGSchema = `
CREATE TABLE IF NOT EXISTS clean_runs (
	run_id           text PRIMARY KEY,
	source           text NOT NULL,
	started_at       timestamptz NOT NULL,
	finished_at      timestamptz NOT NULL,
	read_rows        integer NOT NULL,
	written_rows     integer NOT NULL,
	dropped_empty    integer NOT NULL,
	dropped_filtered integer NOT NULL,
	stage_failures   integer NOT NULL,
	options          text NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS cleaned_comments (
	run_id        text NOT NULL,
	line          integer NOT NULL,
	comment_id    text,
	video_id      text,
	original_text text,
	cleaned_text  text NOT NULL,
	cleaned_at    timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, line)
);
CREATE INDEX IF NOT EXISTS cleaned_comments_video_idx ON cleaned_comments (video_id);
`

var cleanedColumns = []string{"run_id", "line", "comment_id", "video_id", "original_text", "cleaned_text", "cleaned_at"}

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage is the Postgres side of the cleaning job
type Storage interface {
	domain.RunStore
	EnsureSchema(ctx context.Context) error
	WriteCleaned(ctx context.Context, runID string, l domain.Layout, keepRaw bool, xs []domain.Cleaned) error
}

// EnsureSchema implements Storage
func (s *pg) EnsureSchema(ctx context.Context) error {
	_, err := s.q.Exec(ctx, PGSchema)
	return perr.FromPostgres(err, "ensure clean schema")
}

// WriteCleaned implements Storage; it uses COPY when the queryer supports it
func (s *pg) WriteCleaned(ctx context.Context, runID string, l domain.Layout, keepRaw bool, xs []domain.Cleaned) error {
	if len(xs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([][]any, 0, len(xs))
	for _, c := range xs {
		rows = append(rows, []any{
			runID,
			c.Record.Line,
			nullable(c.Record, l.CommentID),
			nullable(c.Record, l.VideoID),
			rawOrNil(c.Raw, keepRaw),
			c.Text,
			now,
		})
	}

	if cp, ok := s.q.(store.Copier); ok {
		_, err := cp.CopyFrom(ctx, "cleaned_comments", cleanedColumns, rows)
		return perr.FromPostgresf(err, "copy %d cleaned comments", len(rows))
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO cleaned_comments (` + strings.Join(cleanedColumns, ", ") + `) VALUES `)
	args := make([]any, 0, len(rows)*len(cleanedColumns))
	for i, r := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*len(cleanedColumns) + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, r...)
	}
	// re-running a run id replaces nothing
	sb.WriteString(` ON CONFLICT (run_id, line) DO NOTHING`)
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgresf(err, "insert %d cleaned comments", len(rows))
}

// SaveRun implements domain.RunStore
func (s *pg) SaveRun(ctx context.Context, r domain.Summary) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO clean_runs
			(run_id, source, started_at, finished_at, read_rows, written_rows,
			 dropped_empty, dropped_filtered, stage_failures, options)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (run_id) DO UPDATE SET
			finished_at      = EXCLUDED.finished_at,
			read_rows        = EXCLUDED.read_rows,
			written_rows     = EXCLUDED.written_rows,
			dropped_empty    = EXCLUDED.dropped_empty,
			dropped_filtered = EXCLUDED.dropped_filtered,
			stage_failures   = EXCLUDED.stage_failures`,
		r.RunID, r.Source, r.StartedAt.UTC(), r.FinishedAt.UTC(), r.Read, r.Written,
		r.DroppedEmpty, r.DroppedFiltered, r.StageFailures, r.Options,
	)
	return perr.FromPostgresf(err, "save run %s", r.RunID)
}

// RecentRuns implements domain.RunStore
func (s *pg) RecentRuns(ctx context.Context, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	out, err := store.Many(ctx, s.q, scanRun, `
		SELECT run_id, source, started_at, finished_at, read_rows, written_rows,
		       dropped_empty, dropped_filtered, stage_failures, options
		  FROM clean_runs
		 ORDER BY started_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list runs")
	}
	return out, nil
}

func scanRun(r store.Row) (domain.Summary, error) {
	var s domain.Summary
	err := r.Scan(&s.RunID, &s.Source, &s.StartedAt, &s.FinishedAt, &s.Read, &s.Written,
		&s.DroppedEmpty, &s.DroppedFiltered, &s.StageFailures, &s.Options)
	return s, err
}

func nullable(r domain.Record, i int) any {
	if i < 0 {
		return nil
	}
	if v := strings.TrimSpace(r.Field(i)); v != "" {
		return v
	}
	return nil
}

func rawOrNil(raw string, keep bool) any {
	if !keep {
		return nil
	}
	return raw
}

// PGSink writes cleaned rows to Postgres and records the run
type PGSink struct {
	db      store.TxRunner
	st      Storage
	layout  domain.Layout
	keepRaw bool
}

var _ domain.SinkPort = (*PGSink)(nil)

// NewPGSink binds Storage to db
func NewPGSink(db store.TxRunner) *PGSink {
	return &PGSink{db: db, st: repokit.MustBind(NewPG(), db)}
}

// Name identifies the sink in logs
func (s *PGSink) Name() string { return "pg" }

// Open creates the tables when missing
func (s *PGSink) Open(ctx context.Context, _ string, layout domain.Layout, keepRaw bool) error {
	s.layout, s.keepRaw = layout, keepRaw
	return s.st.EnsureSchema(ctx)
}

// writeAttempts bounds tries of a batch that hit contention or a restarting server
const writeAttempts = 3

var writeBackoff = 250 * time.Millisecond

// Write loads one batch. Retryable postgres failures are tried again after writeBackoff
func (s *PGSink) Write(ctx context.Context, runID string, xs []domain.Cleaned) error {
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(writeBackoff), writeAttempts-1)
	return backoff.Retry(func() error {
		err := s.st.WriteCleaned(ctx, runID, s.layout, s.keepRaw, xs)
		if err != nil && !perr.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(b, ctx))
}

// Close is a no-op; the pool belongs to the store
func (s *PGSink) Close(context.Context) error { return nil }

// SaveRun records the summary inside a run-scoped transaction that first ensures the schema
func (s *PGSink) SaveRun(ctx context.Context, r domain.Summary) error {
	tx := repokit.WithBeginHooks(s.db, func(ctx context.Context, q repokit.Queryer) error {
		return repokit.MustBind(NewPG(), q).EnsureSchema(ctx)
	})
	return store.InRun(ctx, tx, r.RunID, func(ctx context.Context, q store.RowQuerier) error {
		return repokit.MustBind(NewPG(), q).SaveRun(ctx, r)
	})
}

// RecentRuns lists the latest runs first
func (s *PGSink) RecentRuns(ctx context.Context, limit int) ([]domain.Summary, error) {
	return s.st.RecentRuns(ctx, limit)
}
