// Command judolguard-clean cleans a CSV of YouTube comments into canonical text
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"judolguard/internal/core/version"
	"judolguard/internal/modkit"
	"judolguard/internal/modkit/repokit"
	"judolguard/internal/modkit/module"
	"judolguard/internal/platform/config"
	"judolguard/internal/platform/logger"
	"judolguard/internal/platform/store"

	commentsdom "judolguard/internal/services/comments/domain"
	commentsmod "judolguard/internal/services/comments/module"
	commentsrepo "judolguard/internal/services/comments/repo"
)

func main() {
	var (
		in         = flag.String("in", "", "input CSV path, - for stdin")
		out        = flag.String("out", "", "output CSV path, - for stdout (empty skips the CSV sink)")
		textCol    = flag.String("text-column", "", "column holding the comment text")
		columns    = flag.String("columns", "", "comma separated output columns (default: input header)")
		domainNum  = flag.String("domain-number", "", "remove | preserve | separate_token")
		number     = flag.String("number", "", "aggressive | smart | preserve")
		stemmer    = flag.String("stemmer", "", "sastrawi | none")
		aggressive = flag.Bool("aggressive", false, "run the extra stopword and stemming passes")
		workers    = flag.Int("workers", 0, "concurrency (>=1)")
		batch      = flag.Int("batch", 0, "rows per batch")
		keepRaw    = flag.Bool("keep-raw", false, "keep the raw text in an original_text column")
		dropSingle = flag.Bool("drop-single-word", false, "drop rows that clean to one word")
		dropTS     = flag.Bool("drop-timestamps", false, "drop rows whose raw text has a video timestamp")
		dropNum    = flag.Bool("drop-numeric", false, "drop rows that clean to digits only")
		toPG       = flag.Bool("pg", false, "write cleaned rows and the run summary to postgres")
		reports    = flag.Bool("reports", false, "write per comment analysis rows to clickhouse")
		showVer    = flag.Bool("version", false, "print build info and exit")
	)
	flag.Parse()

	version.SetService("judolguard-clean")
	if *showVer {
		_ = json.NewEncoder(os.Stdout).Encode(version.Info())
		return
	}
	root := config.New()
	l := logger.Get()

	if err := checkTargets(*in, *out, *toPG, *reports); err != nil {
		l.Fatal().Err(err).Msg("invalid flags")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	if *toPG || *reports {
		cfg := store.Config{AppName: "judolguard-clean"}
		// the flags make the DBURLs mandatory
		if pgConf := root.Prefix("SERVICE_PGSQL_"); *toPG {
			pgConf.MustString("DBURL")
			cfg.PG = store.PGFrom(pgConf)
		}
		if chConf := root.Prefix("SERVICE_CLICKHOUSE_"); *reports {
			chConf.MustString("DBURL")
			cfg.CH = store.CHFrom(chConf)
		}
		var err error
		st, err = store.Open(ctx, cfg, store.WithLogger(*l))
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
		repokit.MustGuard(ctx, st)
	}

	src, err := openSource(*in)
	if err != nil {
		l.Fatal().Err(err).Str("in", *in).Msg("open input")
	}
	defer func() { _ = src.Close() }()

	overrides := commentsmod.Options{
		DomainNumber: *domainNum,
		Number:       *number,
		Aggressive:   *aggressive,
		Stemmer:      *stemmer,
		Workers:      *workers,
		BatchSize:    *batch,
		TextColumn:   *textCol,
		Columns:      splitCSV(*columns),
		KeepRaw:      *keepRaw,
		Filters: commentsdom.Filters{
			SingleWord: *dropSingle,
			Timestamps: *dropTS,
			Numeric:    *dropNum,
		},
	}
	opts := commentsmod.Merge(commentsmod.FromConfig(root), overrides)

	ports := commentsdom.Ports{Source: src}
	if *out != "" {
		sink, err := openSink(*out, opts.Columns)
		if err != nil {
			l.Fatal().Err(err).Str("out", *out).Msg("open output")
		}
		ports.Sinks = append(ports.Sinks, sink)
	}
	if *toPG {
		pg := commentsrepo.NewPGSink(st.PG)
		ports.Sinks = append(ports.Sinks, pg)
		ports.Runs = pg
	}
	if *reports {
		ports.Sinks = append(ports.Sinks, commentsrepo.NewCHReports(st.CH))
	}

	deps := modkit.Deps{Cfg: root, Log: *l}
	if st != nil {
		deps.PG = st.PG
		deps.CH = st.CH
	}

	cm := commentsmod.New(deps, overrides, modkit.WithPorts(ports))
	module.Register(cm.Name(), cm.Ports())
	cp, err := module.Lookup[commentsmod.Ports](cm.Name())
	if err != nil {
		l.Fatal().Err(err).Msg("comments module")
	}

	sum, err := cp.Runner.Run(ctx, opts.Input(*in, *reports))
	if err != nil {
		l.Fatal().Err(err).Str("run_id", sum.RunID).Msg("clean failed")
	}

	l.Info().
		Str("run_id", sum.RunID).
		Int("read", sum.Read).
		Int("written", sum.Written).
		Int("dropped_empty", sum.DroppedEmpty).
		Int("dropped_filtered", sum.DroppedFiltered).
		Int("stage_failures", sum.StageFailures).
		Str("empty_ratio", fmt.Sprintf("%.2f%%", sum.EmptyRatio()*100)).
		Msg("clean done")
}

// checkTargets rejects a run without an input or without any sink
func checkTargets(in, out string, toPG, reports bool) error {
	if in == "" {
		return errors.New("-in is required")
	}
	if out == "" && !toPG && !reports {
		return errors.New("nothing to write: set -out, -pg or -reports")
	}
	return nil
}

func openSource(path string) (*commentsrepo.CSVSource, error) {
	if path == "-" {
		return commentsrepo.NewCSVSource(os.Stdin)
	}
	return commentsrepo.OpenCSVSource(path)
}

func openSink(path string, columns []string) (*commentsrepo.CSVSink, error) {
	if path == "-" {
		return commentsrepo.NewCSVSink(os.Stdout, columns), nil
	}
	return commentsrepo.CreateCSVSink(path, columns)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
