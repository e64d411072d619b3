//go:build integration_pg

package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"judolguard/internal/platform/testkit/containers"

	"github.com/rs/zerolog"
)

func TestPostgres_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var logs bytes.Buffer
	s, err := Open(ctx, Config{
		AppName: "judolguard-it",
		PG:      PGConfig{URL: containers.Postgres(t), MaxConns: 2, LogSQL: true},
	}, WithLogger(zerolog.New(&logs)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close(ctx)
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}

	if _, err := s.PG.Exec(ctx, `CREATE TABLE brand_hits (brand text PRIMARY KEY, hits int NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	// rollback leaves nothing behind
	boom := errors.New("boom")
	err = s.PG.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO brand_hits VALUES ('sgi88', 1)`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Tx = %v", err)
	}

	err = InRun(ctx, s.PG, "run-it", func(ctx context.Context, q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO brand_hits VALUES ('pulauwin', 3)`)
		return err
	})
	if err != nil {
		t.Fatalf("InRun: %v", err)
	}

	n, err := s.PG.(Copier).CopyFrom(ctx, "public.brand_hits", []string{"brand", "hits"}, [][]any{{"weton88", 2}, {"sgi88", 5}})
	if err != nil || n != 2 {
		t.Fatalf("CopyFrom = %d, %v", n, err)
	}

	type hit struct {
		Brand string
		Hits  int32
	}
	got, err := Many(ctx, s.PG, func(r Row) (hit, error) {
		var h hit
		return h, r.Scan(&h.Brand, &h.Hits)
	}, `SELECT brand, hits FROM brand_hits ORDER BY hits DESC`)
	if err != nil {
		t.Fatalf("Many: %v", err)
	}
	if len(got) != 3 || got[0] != (hit{"sgi88", 5}) || got[2] != (hit{"weton88", 2}) {
		t.Fatalf("rows %v", got)
	}

	var app string
	if err := s.PG.QueryRow(ctx, `SELECT current_setting('application_name')`).Scan(&app); err != nil || app != "judolguard-it" {
		t.Fatalf("application_name = %q, %v", app, err)
	}
	if !strings.Contains(logs.String(), `"run_id":"run-it"`) || !strings.Contains(logs.String(), `COPY \"public\".\"brand_hits\"`) {
		t.Fatalf("trace lines missing:\n%s", logs.String())
	}
}
