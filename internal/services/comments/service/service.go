// Package service implements the comment cleaning job
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"judolguard/internal/core/cleaner"
	perr "judolguard/internal/platform/errors"
	"judolguard/internal/platform/logger"
	"judolguard/internal/platform/store"
	"judolguard/internal/services/comments/domain"
)

// Config for the clean service
type Config struct {
	Workers   int
	BatchSize int
}

// Service implements domain.RunnerPort
type Service struct {
	Source domain.SourcePort
	Sinks  []domain.SinkPort
	Runs   domain.RunStore
	Clean  *cleaner.Cleaner
	Cfg    Config

	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// New constructs a new clean service
func New(ports domain.Ports, c *cleaner.Cleaner, cfg Config, log *logger.Logger) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	if log == nil {
		log = logger.Named("clean")
	}
	return &Service{
		Source: ports.Source,
		Sinks:  ports.Sinks,
		Runs:   ports.Runs,
		Clean:  c,
		Cfg:    cfg,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Run cleans every record of the source and hands the survivors to all sinks in input order
func (s *Service) Run(ctx context.Context, in domain.Input) (domain.Summary, error) {
	if in.Workers <= 0 {
		in.Workers = s.Cfg.Workers
	}
	if in.BatchSize <= 0 {
		in.BatchSize = s.Cfg.BatchSize
	}

	layout, err := Locate(s.Source.Header(), in.TextColumn)
	if err != nil {
		return domain.Summary{}, err
	}

	sum := domain.Summary{
		RunID:     s.newID(),
		Source:    in.Source,
		StartedAt: s.now().UTC(),
		Options:   Describe(s.Clean.Options(), in),
	}
	log := s.log.With().Str("run_id", sum.RunID).Str("source", in.Source).Logger()
	ctx = store.WithRunID(ctx, sum.RunID)

	opened := make([]domain.SinkPort, 0, len(s.Sinks))
	closeAll := func() error {
		var errs []error
		for _, sk := range opened {
			if err := sk.Close(ctx); err != nil {
				errs = append(errs, perr.WithOp(err, "close "+sk.Name()))
			}
		}
		opened = nil
		return errors.Join(errs...)
	}

	for _, sk := range s.Sinks {
		if err := sk.Open(ctx, sum.RunID, layout, in.KeepRaw); err != nil {
			return sum, errors.Join(perr.WithOp(err, "open "+sk.Name()), closeAll())
		}
		opened = append(opened, sk)
	}

	for {
		recs, rerr := s.Source.Next(ctx, in.BatchSize)
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return sum, errors.Join(rerr, closeAll())
		}
		if len(recs) > 0 {
			kept, err := s.cleanBatch(ctx, layout, recs, in, &sum)
			if err != nil {
				return sum, errors.Join(err, closeAll())
			}
			if len(kept) > 0 {
				for _, sk := range opened {
					if err := sk.Write(ctx, sum.RunID, kept); err != nil {
						return sum, errors.Join(perr.WithOp(err, "write "+sk.Name()), closeAll())
					}
				}
			}
			log.Debug().Int("read", sum.Read).Int("written", sum.Written).Msg("batch done")
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
	}

	if err := closeAll(); err != nil {
		return sum, err
	}
	sum.FinishedAt = s.now().UTC()

	if s.Runs != nil {
		if err := s.Runs.SaveRun(ctx, sum); err != nil {
			return sum, perr.WithOp(err, "save run")
		}
	}

	log.Info().
		Int("read", sum.Read).
		Int("written", sum.Written).
		Int("dropped_empty", sum.DroppedEmpty).
		Float64("empty_pct", 100*sum.EmptyRatio()).
		Int("dropped_filtered", sum.DroppedFiltered).
		Int("stage_failures", sum.StageFailures).
		Dur("elapsed", sum.FinishedAt.Sub(sum.StartedAt)).
		Msg("clean run finished")
	return sum, nil
}

type slot struct {
	c      domain.Cleaned
	drop   domain.Drop
	failed int
}

// cleanBatch cleans recs on at most in.Workers goroutines and returns the kept rows in input order
func (s *Service) cleanBatch(ctx context.Context, l domain.Layout, recs []domain.Record, in domain.Input, sum *domain.Summary) ([]domain.Cleaned, error) {
	out := make([]slot, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.Workers)
	for i := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw := recs[i].Field(l.Text)
			sl := slot{c: domain.Cleaned{Record: recs[i], Raw: raw}}
			if in.Reports {
				a := s.Clean.Analyze(raw)
				sl.c.Text, sl.c.Analysis, sl.failed = a.Cleaned, &a, len(a.FailedStages)
			} else {
				r := s.Clean.CleanDetailed(raw)
				sl.c.Text, sl.failed = r.Text, len(r.Failed)
			}
			sl.drop = Classify(raw, sl.c.Text, in.Filters)
			out[i] = sl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := make([]domain.Cleaned, 0, len(out))
	for _, sl := range out {
		sum.Read++
		sum.StageFailures += sl.failed
		switch sl.drop {
		case domain.DropNone:
			kept = append(kept, sl.c)
		case domain.DropEmpty:
			sum.DroppedEmpty++
		default:
			sum.DroppedFiltered++
		}
	}
	sum.Written += len(kept)
	return kept, nil
}

var (
	timestampRe = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	numericRe   = regexp.MustCompile(`^\d+$`)
)

// Classify tells whether a cleaned comment is written and why not.
// Timestamps are looked up in the raw text since cleaning removes the colon
func Classify(raw, cleaned string, f domain.Filters) domain.Drop {
	cleaned = strings.TrimSpace(cleaned)
	switch {
	case cleaned == "":
		return domain.DropEmpty
	case f.Timestamps && timestampRe.MatchString(raw):
		return domain.DropTimestamp
	case f.Numeric && numericRe.MatchString(cleaned):
		return domain.DropNumeric
	case f.SingleWord && len(strings.Fields(cleaned)) <= 1:
		return domain.DropSingleWord
	}
	return domain.DropNone
}

// Locate finds the text, comment id and video id columns in header
func Locate(header []string, textColumn string) (domain.Layout, error) {
	if textColumn = strings.TrimSpace(textColumn); textColumn == "" {
		textColumn = domain.DefaultTextColumn
	}
	l := domain.Layout{Header: header, Text: -1, CommentID: -1, VideoID: -1}
	for i, h := range header {
		switch h {
		case textColumn:
			if l.Text < 0 {
				l.Text = i
			}
		case "comment_id":
			if l.CommentID < 0 {
				l.CommentID = i
			}
		case "video_id":
			if l.VideoID < 0 {
				l.VideoID = i
			}
		}
	}
	if l.Text < 0 {
		return l, perr.WithField(perr.InvalidArgf("column %q not found in header", textColumn), "text_column")
	}
	return l, nil
}

// Describe renders the options a run used
func Describe(o cleaner.Options, in domain.Input) string {
	return fmt.Sprintf(
		"domain_number=%s number=%s aggressive=%t drop_single_word=%t drop_timestamps=%t drop_numeric=%t",
		o.DomainNumber, o.Number, o.Aggressive,
		in.Filters.SingleWord, in.Filters.Timestamps, in.Filters.Numeric,
	)
}
