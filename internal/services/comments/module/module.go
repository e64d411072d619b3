// Package module implements the comments cleaning module
package module

import (
	"net/http"

	"judolguard/internal/core/cleaner"
	"judolguard/internal/modkit"
	"judolguard/internal/modkit/httpkit"
	str "judolguard/internal/platform/strings"
	"judolguard/internal/services/comments/domain"
	"judolguard/internal/services/comments/service"
)

// Ports exposed by the comments module
type Ports struct {
	Runner  domain.RunnerPort
	Cleaner *cleaner.Cleaner
	Options Options
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	name  string
	ports Ports
}

// New constructs the comments module. Without WithPorts(domain.Ports) only the Cleaner is exposed
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("comments"),
	}, opts...)...)

	cfg := Merge(FromConfig(deps.Cfg), overrides)

	log := deps.Log.With().Str("component", "cleaner").Logger()
	c, err := NewCleaner(cfg, &log)
	if err != nil {
		panic(err)
	}

	m := &Module{deps: deps, name: b.Name}
	m.ports = Ports{Cleaner: c, Options: cfg}

	if b.Ports == nil {
		return m
	}
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("comments module: expected WithPorts(comments/domain.Ports)")
	}
	if ports.Source == nil || len(ports.Sinks) == 0 {
		panic("comments module: Ports missing Source or Sinks")
	}

	slog := deps.Log.With().Str("component", "clean").Logger()
	m.ports.Runner = service.New(ports, c, service.Config{
		Workers:   cfg.Workers,
		BatchSize: cfg.BatchSize,
	}, &slog)
	return m
}

// Merge applies non-zero overrides on top of cfg; bools and filters are ORed
func Merge(cfg, o Options) Options {
	if o.DomainNumber != "" {
		cfg.DomainNumber = o.DomainNumber
	}
	if o.Number != "" {
		cfg.Number = o.Number
	}
	if o.Stemmer != "" {
		cfg.Stemmer = o.Stemmer
	}
	if o.Workers != 0 {
		cfg.Workers = o.Workers
	}
	if o.BatchSize != 0 {
		cfg.BatchSize = o.BatchSize
	}
	if o.TextColumn != "" {
		cfg.TextColumn = o.TextColumn
	}
	if len(o.Columns) > 0 {
		cfg.Columns = o.Columns
	}
	cfg.Aggressive = cfg.Aggressive || o.Aggressive
	cfg.KeepRaw = cfg.KeepRaw || o.KeepRaw
	cfg.Filters.SingleWord = cfg.Filters.SingleWord || o.Filters.SingleWord
	cfg.Filters.Timestamps = cfg.Filters.Timestamps || o.Filters.Timestamps
	cfg.Filters.Numeric = cfg.Filters.Numeric || o.Filters.Numeric
	return cfg
}

// Input builds a run input for source from the module options
func (o Options) Input(source string, reports bool) domain.Input {
	return domain.Input{
		Source:     source,
		TextColumn: o.TextColumn,
		Workers:    o.Workers,
		BatchSize:  o.BatchSize,
		KeepRaw:    o.KeepRaw,
		Filters:    o.Filters,
		Reports:    reports,
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}

