// Package store connects the optional storage backends: postgres for run
// history and comment reports, clickhouse for report analytics. Repos see
// them through the small seams below, never through the drivers
package store

import (
	"context"
	"errors"
	"fmt"

	"judolguard/internal/platform/logger"
	"judolguard/internal/platform/store/ch"
	"judolguard/internal/platform/store/pg"

	"github.com/rs/zerolog"
)

// Store holds the connected backends. A nil seam means that backend is off
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
}

type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the SQL surface repos use, inside or outside a transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner commits when fn returns nil and rolls back otherwise
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Copier bulk loads rows with COPY. The postgres seam implements it
type Copier interface {
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}

// Clickhouse is the columnar seam: batch inserts plus plain queries
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

type Pinger interface{ Ping(context.Context) error }

// Open connects every backend cfg names. Postgres is pinged until it answers,
// clickhouse dials lazily
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	if cfg.PG.URL != "" {
		pool, err := pg.Open(ctx, cfg.pgConfig(s.Log))
		if err != nil {
			return nil, err
		}
		s.PG = newPGAdapter(pool)
	}
	if cfg.CH.URL != "" {
		c, err := ch.Open(ctx, ch.Config{URL: cfg.CH.URL, Role: cfg.AppName})
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.CH = newCHAdapter(c)
	}
	return s, nil
}

type seam struct {
	name string
	v    any
}

func (s *Store) seams() []seam {
	var out []seam
	if s.PG != nil {
		out = append(out, seam{"pg", s.PG})
	}
	if s.CH != nil {
		out = append(out, seam{"ch", s.CH})
	}
	return out
}

// Guard pings every backend that can be pinged and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for _, b := range s.seams() {
		if p, ok := b.v.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	for _, b := range s.seams() {
		if c, ok := b.v.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
