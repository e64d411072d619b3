// Package http provides http transport for runs
package http

import (
	stdhttp "net/http"

	"judolguard/internal/modkit/httpkit"
	"judolguard/internal/services/api/runs/domain"
	svc "judolguard/internal/services/api/runs/service"
)

// Register mounts runs endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)
	httpkit.PostJSON[domain.ReportInput](r, "/report", h.report)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /runs/recent Runs runsRecent
// @Summary Finished cleaning runs, latest first
// @Tags Runs
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Query"
// @Success 200 {array} domain.Run "ok"
// @Router /runs/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	return h.svc.Recent(r.Context(), in)
}

// swagger:route POST /runs/report Runs runsReport
// @Summary Keyword, severity and brand summary of one run
// @Tags Runs
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Query"
// @Success 200 {object} domain.Report "ok"
// @Router /runs/report [post]
func (h *handlers) report(r *stdhttp.Request, in domain.ReportInput) (any, error) {
	return h.svc.Report(r.Context(), in)
}
