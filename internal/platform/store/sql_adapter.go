package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxConn is what pgxpool.Pool and pgx.Tx have in common
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQuerier narrows a pgx connection or transaction to RowQuerier. Tracing
// happens in pgx through the pool's tracer
type pgQuerier struct{ c pgxConn }

func (q pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ct, err := q.c.Exec(ctx, sql, args...)
	return ct, err
}

func (q pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := q.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (q pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return q.c.QueryRow(ctx, sql, args...)
}

// pgRows adds Columns to pgx.Rows
type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

// pgAdapter is the postgres seam: TxRunner, Copier and Pinger over a pool
type pgAdapter struct {
	pgQuerier
	pool *pgxpool.Pool
}

func newPGAdapter(pool *pgxpool.Pool) *pgAdapter {
	return &pgAdapter{pgQuerier: pgQuerier{c: pool}, pool: pool}
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error { return fn(pgQuerier{c: tx}) })
}

// CopyFrom loads rows into table, which may be schema qualified
func (a *pgAdapter) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	return a.pool.CopyFrom(ctx, pgx.Identifier(strings.Split(table, ".")), columns, pgx.CopyFromRows(rows))
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.pool.Ping(ctx) }
func (a *pgAdapter) Close() error                   { a.pool.Close(); return nil }
