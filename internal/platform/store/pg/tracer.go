package pg

import (
	"context"
	"strings"
	"time"

	"judolguard/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

// Tracer logs every statement and COPY the pool runs, with the request and
// run ids from the context. Statements at or above slow log at warn
type Tracer struct {
	log  logger.Logger
	slow time.Duration
}

var (
	_ pgx.QueryTracer    = (*Tracer)(nil)
	_ pgx.CopyFromTracer = (*Tracer)(nil)
)

func NewTracer(log logger.Logger, slow time.Duration) *Tracer {
	return &Tracer{log: log.With().Str("component", "pg").Logger(), slow: slow}
}

type traceKey struct{}

type traceStart struct {
	sql  string
	args []any
	at   time.Time
}

func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: d.SQL, args: d.Args, at: time.Now()})
}

func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	t.done(ctx, d.CommandTag.RowsAffected(), d.Err)
}

func (t *Tracer) TraceCopyFromStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceCopyFromStartData) context.Context {
	sql := "COPY " + d.TableName.Sanitize() + " (" + strings.Join(d.ColumnNames, ", ") + ")"
	return context.WithValue(ctx, traceKey{}, traceStart{sql: sql, at: time.Now()})
}

func (t *Tracer) TraceCopyFromEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceCopyFromEndData) {
	t.done(ctx, d.CommandTag.RowsAffected(), d.Err)
}

func (t *Tracer) done(ctx context.Context, rows int64, err error) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := time.Since(st.at)
	slow := t.slow > 0 && elapsed >= t.slow

	evt := t.log.Info()
	switch {
	case err != nil:
		evt = t.log.Error().Err(err)
	case slow:
		evt = t.log.Warn()
	}
	reqID, runID := logger.IDs(ctx)
	if reqID != "" {
		evt = evt.Str("request_id", reqID)
	}
	if runID != "" {
		evt = evt.Str("run_id", runID)
	}
	evt.Str("sql", strings.Join(strings.Fields(st.sql), " ")).
		Interface("args", st.args).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Bool("slow", slow).
		Msg("pg query")
}
