// Package pg opens the postgres pool: pgxpool with an optional zerolog query
// tracer, and a connect loop that waits for the server to answer
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures Open
type Config struct {
	URL      string
	AppName  string // reported as application_name
	MaxConns int32
	Tracer   *Tracer // nil traces nothing

	// ConnectTimeout bounds the wait for the first successful ping, default 30s
	ConnectTimeout time.Duration
}

const pingTimeout = 3 * time.Second

var newPool = pgxpool.NewWithConfig

type pinger interface{ Ping(context.Context) error }

// Open builds the pool and blocks until postgres answers a ping
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.Tracer != nil {
		pcfg.ConnConfig.Tracer = cfg.Tracer
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err := waitReady(ctx, pool, cfg.ConnectTimeout); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// waitReady pings p with exponential backoff until it answers or budget is spent
func waitReady(ctx context.Context, p pinger, budget time.Duration) error {
	if budget <= 0 {
		budget = 30 * time.Second
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = budget

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := p.Ping(pctx); err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return fmt.Errorf("pg: no answer after %d attempts: %w", attempts, err)
	}
	return nil
}
