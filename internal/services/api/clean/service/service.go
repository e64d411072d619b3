// Package service cleans comments for the http api
package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"judolguard/internal/core/cleaner"
	perr "judolguard/internal/platform/errors"
	"judolguard/internal/platform/logger"
	"judolguard/internal/services/api/clean/domain"
)

// Service defines the service contract for cleaning
type Service interface{ domain.ServicePort }

// Config bounds request work
type Config struct {
	MaxBatch int // texts per batch request, default 500
	Workers  int // goroutines per batch request, default 4
}

// Svc implements Service on top of a base Cleaner. Requests that override the
// options get a Cleaner built once per distinct option set
type Svc struct {
	base *cleaner.Cleaner
	cfg  Config
	log  *logger.Logger

	mu    sync.Mutex
	cache map[cleaner.Options]*cleaner.Cleaner

	newID func() string
}

// New creates a clean service
func New(base *cleaner.Cleaner, cfg Config, log *logger.Logger) *Svc {
	if base == nil {
		panic("clean.Service requires a non nil Cleaner")
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 500
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if log == nil {
		log = logger.Named("clean-api")
	}
	return &Svc{
		base:  base,
		cfg:   cfg,
		log:   log,
		cache: map[cleaner.Options]*cleaner.Cleaner{base.Options(): base},
		newID: uuid.NewString,
	}
}

// Clean returns the canonical text of one comment
func (s *Svc) Clean(_ context.Context, in domain.CleanInput) (domain.CleanOutput, error) {
	c, err := s.cleanerFor(in.Options)
	if err != nil {
		return domain.CleanOutput{}, err
	}
	res := c.CleanDetailed(in.Text)
	if len(res.Failed) > 0 {
		s.log.Warn().Strs("stages", res.Failed).Msg("stage failures while cleaning")
	}
	return domain.CleanOutput{Cleaned: res.Text, Empty: res.Text == "", FailedStages: res.Failed}, nil
}

// Batch cleans every text with the same options and keeps the input order
func (s *Svc) Batch(ctx context.Context, in domain.BatchInput) (domain.BatchOutput, error) {
	if len(in.Texts) > s.cfg.MaxBatch {
		return domain.BatchOutput{}, perr.WithField(
			perr.InvalidArgf("batch holds %d texts, limit is %d", len(in.Texts), s.cfg.MaxBatch), "texts")
	}
	c, err := s.cleanerFor(in.Options)
	if err != nil {
		return domain.BatchOutput{}, err
	}

	items := make([]domain.BatchItem, len(in.Texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, text := range in.Texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := c.Clean(text)
			items[i] = domain.BatchItem{ID: s.newID(), Index: i, Cleaned: out, Empty: out == ""}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.BatchOutput{}, err
	}

	res := domain.BatchOutput{Items: items}
	for _, it := range items {
		if it.Empty {
			res.Empty++
		}
	}
	return res, nil
}

// Analyze cleans one comment and reports keyword hits, brands and lengths
func (s *Svc) Analyze(_ context.Context, in domain.CleanInput) (domain.AnalyzeOutput, error) {
	c, err := s.cleanerFor(in.Options)
	if err != nil {
		return domain.AnalyzeOutput{}, err
	}
	return c.Analyze(in.Text), nil
}

// Trace runs a single pipeline pass and returns every stage output
func (s *Svc) Trace(_ context.Context, in domain.CleanInput) (domain.TraceOutput, error) {
	c, err := s.cleanerFor(in.Options)
	if err != nil {
		return domain.TraceOutput{}, err
	}
	stages := c.Trace(in.Text)
	if stages == nil {
		stages = []cleaner.StageResult{}
	}
	return domain.TraceOutput{Stages: stages, Cleaned: c.Clean(in.Text)}, nil
}

// Resolve merges request overrides onto the base options
func Resolve(base cleaner.Options, o domain.Options) (cleaner.Options, error) {
	out := base
	if o.DomainNumber != "" {
		v, err := cleaner.ParseDomainNumberStrategy(o.DomainNumber)
		if err != nil {
			return out, perr.WithField(perr.InvalidArgf("%v", err), "domain_number")
		}
		out.DomainNumber = v
	}
	if o.Number != "" {
		v, err := cleaner.ParseNumberStrategy(o.Number)
		if err != nil {
			return out, perr.WithField(perr.InvalidArgf("%v", err), "number")
		}
		out.Number = v
	}
	if o.Aggressive != nil {
		out.Aggressive = *o.Aggressive
	}
	return out, nil
}

func (s *Svc) cleanerFor(o domain.Options) (*cleaner.Cleaner, error) {
	opts, err := Resolve(s.base.Options(), o)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cache[opts]; ok {
		return c, nil
	}
	c, err := s.base.With(opts)
	if err != nil {
		return nil, perr.InvalidArgf("%v", err)
	}
	s.cache[opts] = c
	s.log.Debug().Str("options", describe(opts)).Msg("built cleaner for request options")
	return c, nil
}

func describe(o cleaner.Options) string {
	return "domain_number=" + string(o.DomainNumber) + " number=" + string(o.Number) + " aggressive=" + strconv.FormatBool(o.Aggressive)
}
