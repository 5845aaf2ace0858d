package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	ucFinance "github.com/BruksfildServices01/salon-manager/internal/usecase/finance"
)

type CashHandler struct {
	repo  domain.Repository
	open  *ucFinance.OpenCashSession
	close *ucFinance.CloseCashSession
	list  *ucFinance.ListCashSessions
}

func NewCashHandler(repo domain.Repository, auditor *audit.Dispatcher, loc *time.Location) *CashHandler {
	return &CashHandler{
		repo:  repo,
		open:  ucFinance.NewOpenCashSession(repo, auditor, loc),
		close: ucFinance.NewCloseCashSession(repo, auditor, loc),
		list:  ucFinance.NewListCashSessions(repo),
	}
}

type OpenCashRequest struct {
	OpenedBy string          `json:"opened_by"`
	Amount   decimal.Decimal `json:"opening_amount"`
}

type CloseCashRequest struct {
	ClosedBy string          `json:"closed_by"`
	Amount   decimal.Decimal `json:"closing_amount"`
}

func (h *CashHandler) Open(c *gin.Context) {
	var req OpenCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	s, err := h.open.Execute(c.Request.Context(), req.OpenedBy, req.Amount)
	if err != nil {
		if httperr.IsBusiness(err, "cash_session_open") {
			httperr.Conflict(c, "cash_session_open", "Já existe um caixa aberto.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, s)
}

// Close fecha o caixa :id, ou o caixa aberto quando chamado em /cash/current/close.
func (h *CashHandler) Close(c *gin.Context) {
	id := uuid.Nil
	if c.Param("id") != "" {
		var ok bool
		if id, ok = paramID(c); !ok {
			return
		}
	}

	var req CloseCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	s, err := h.close.Execute(c.Request.Context(), id, req.ClosedBy, req.Amount)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *CashHandler) Current(c *gin.Context) {
	s, err := h.repo.FindOpenCashSession(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": s})
}

func (h *CashHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), queryInt(c, "limit", 30))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}
