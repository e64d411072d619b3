// Package http provides http transport for cleaning
package http

import (
	stdhttp "net/http"

	"judolguard/internal/modkit/httpkit"
	"judolguard/internal/services/api/clean/domain"
	svc "judolguard/internal/services/api/clean/service"
)

// Register mounts the clean endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CleanInput](r, "/", h.clean)
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.batch)
	httpkit.PostJSON[domain.CleanInput](r, "/trace", h.trace)
}

// RegisterAnalyze mounts the analysis endpoint on the given router
func RegisterAnalyze(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CleanInput](r, "/", h.analyze)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /clean Clean cleanOne
// @Summary Clean one comment
// @Tags Clean
// @Accept json
// @Produce json
// @Param payload body domain.CleanInput true "Comment"
// @Success 200 {object} domain.CleanOutput "ok"
// @Router /clean [post]
func (h *handlers) clean(r *stdhttp.Request, in domain.CleanInput) (any, error) {
	return h.svc.Clean(r.Context(), in)
}

// swagger:route POST /clean/batch Clean cleanBatch
// @Summary Clean a batch of comments
// @Tags Clean
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Comments"
// @Success 200 {object} domain.BatchOutput "ok"
// @Router /clean/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.Batch(r.Context(), in)
}

// swagger:route POST /clean/trace Clean cleanTrace
// @Summary Stage by stage output of one pipeline pass
// @Tags Clean
// @Accept json
// @Produce json
// @Param payload body domain.CleanInput true "Comment"
// @Success 200 {object} domain.TraceOutput "ok"
// @Router /clean/trace [post]
func (h *handlers) trace(r *stdhttp.Request, in domain.CleanInput) (any, error) {
	return h.svc.Trace(r.Context(), in)
}

// swagger:route POST /analyze Clean cleanAnalyze
// @Summary Clean one comment and report keywords, brands and lengths
// @Tags Clean
// @Accept json
// @Produce json
// @Param payload body domain.CleanInput true "Comment"
// @Success 200 {object} domain.AnalyzeOutput "ok"
// @Router /analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.CleanInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}
