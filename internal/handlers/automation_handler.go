package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/automation"
)

type AutomationHandler struct {
	runner *automation.Runner
	loc    *time.Location
	now    func() time.Time
}

func NewAutomationHandler(runner *automation.Runner, loc *time.Location) *AutomationHandler {
	return &AutomationHandler{runner: runner, loc: loc, now: time.Now}
}

// RunDaily dispara as três rotinas; erros parciais seguem no relatório.
func (h *AutomationHandler) RunDaily(c *gin.Context) {
	report, err := h.runner.RunDaily(c.Request.Context(), h.now().In(h.loc))
	if err != nil {
		c.JSON(http.StatusMultiStatus, gin.H{
			"report": report,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// RunScan executa uma rotina só (:scan = reminder_24h|birthday|overdue_30).
func (h *AutomationHandler) RunScan(c *gin.Context) {
	var scan func(context.Context, time.Time) (automation.ScanReport, error)

	switch c.Param("scan") {
	case automation.ScanReminder:
		scan = h.runner.Reminder24h
	case automation.ScanBirthday:
		scan = h.runner.Birthday
	case automation.ScanOverdue:
		scan = h.runner.Overdue30
	default:
		httperr.NotFound(c, "scan_not_found", "Rotina não encontrada.")
		return
	}

	report, err := scan(c.Request.Context(), h.now().In(h.loc))
	if err != nil {
		c.JSON(http.StatusMultiStatus, gin.H{
			"report": report,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
