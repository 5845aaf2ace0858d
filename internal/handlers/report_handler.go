package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/report"
)

type ReportHandler struct {
	dashboard *report.GetDashboard
	period    *report.GetPeriodReport
}

func NewReportHandler(repo report.Repository, loc *time.Location) *ReportHandler {
	return &ReportHandler{
		dashboard: report.NewGetDashboard(repo, loc),
		period:    report.NewGetPeriodReport(repo, loc),
	}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, d)
}

// Period aceita ?mode=day|month|year&date=YYYY-MM-DD (default: month, hoje).
func (h *ReportHandler) Period(c *gin.Context) {
	mode := report.Mode(c.Query("mode"))

	r, err := h.period.Execute(c.Request.Context(), mode, c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, r)
}
