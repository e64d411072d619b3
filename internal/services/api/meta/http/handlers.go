// Package http serves liveness, readiness, build info and the loaded lexicon
package http

import (
	"context"
	"net/http"
	"time"

	"judolguard/internal/core/cleaner"
	"judolguard/internal/core/version"
	"judolguard/internal/modkit/httpkit"
)

// Pinger is implemented by the store adapters
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies. PG and CH may be nil or anything; only a
// Pinger is probed
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Cleaner     *cleaner.Cleaner // nil hides /lexicon
}

// readyTimeout bounds all dependency pings of one /ready call
const readyTimeout = 2 * time.Second

type handlers struct{ Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	if d.Cleaner != nil {
		httpkit.Get(r, "/lexicon", h.lexicon)
	}
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"judolguard-api"`
	Started string `json:"started" example:"2026-10-18T08:00:00Z"`
	Now     string `json:"now"     example:"2026-10-18T08:05:00Z"`
}

// ReadyCheck is one dependency probe. Status is ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse rolls the checks up to ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-18T08:05:00Z"`
}

// ServiceResponse reports the uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"judolguard-api"`
	Started string `json:"started" example:"2026-10-18T08:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// LexiconResponse sizes the rule pack and lists the pipeline the API cleans with
type LexiconResponse struct {
	PackVersion   int             `json:"pack_version"   example:"1"`
	Brands        int             `json:"brands"         example:"40"`
	Domains       int             `json:"domains"        example:"12"`
	Vocabulary    int             `json:"vocabulary"     example:"60"`
	Stopwords     int             `json:"stopwords"      example:"300"`
	Important     int             `json:"important"      example:"80"`
	Keywords      int             `json:"keywords"       example:"50"`
	Stages        []string        `json:"stages"`
	Options       cleaner.Options `json:"options"`
	StageFailures int64           `json:"stage_failures" example:"0"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(time.Now())}, nil
}

func probe(ctx context.Context, name string, dep any) ReadyCheck {
	c := ReadyCheck{Name: name, Status: "skipped"}
	if dep == nil {
		return c
	}
	p, ok := dep.(Pinger)
	if !ok {
		c.Status = "unknown"
		return c
	}
	if err := p.Ping(ctx); err != nil {
		c.Status, c.Error = "fail", err.Error()
		return c
	}
	c.Status = "ok"
	return c
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := []ReadyCheck{probe(ctx, "pg", h.PG), probe(ctx, "ch", h.CH)}
	status := "ok"
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			status = "fail"
		case c.Status != "ok" && status == "ok":
			status = "degraded"
		}
	}
	return ReadyResponse{Status: status, Checks: checks, Now: stamp(time.Now())}, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Rule pack sizes, pipeline stages and default options
// @Tags Meta
// @Produce json
// @Success 200 {object} LexiconResponse
// @Router /meta/lexicon [get]
func (h handlers) lexicon(*http.Request) (any, error) {
	c, p := h.Cleaner, h.Cleaner.Pack()
	return LexiconResponse{
		PackVersion:   p.Version,
		Brands:        len(p.Brands),
		Domains:       len(p.Domains),
		Vocabulary:    len(p.Vocabulary),
		Stopwords:     len(p.Stopwords),
		Important:     len(p.Important),
		Keywords:      len(p.Keywords),
		Stages:        c.Stages(),
		Options:       c.Options(),
		StageFailures: c.Failures(),
	}, nil
}
