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
	"github.com/BruksfildServices01/salon-manager/internal/infra/payments"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	ucFinance "github.com/BruksfildServices01/salon-manager/internal/usecase/finance"
)

// ======================================================
// HANDLER
// ======================================================

type FinanceHandler struct {
	loc *time.Location

	listReceivables  *ucFinance.ListReceivables
	createReceivable *ucFinance.CreateReceivable
	settle           *ucFinance.SettleReceivable
	paymentLink      *ucFinance.CreatePaymentLink

	listPayables  *ucFinance.ListPayables
	createPayable *ucFinance.CreatePayable
	payPayable    *ucFinance.PayPayable

	overview *ucFinance.GetOverview
}

func NewFinanceHandler(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	links payments.LinkProvider,
	loc *time.Location,
) *FinanceHandler {
	return &FinanceHandler{
		loc:              loc,
		listReceivables:  ucFinance.NewListReceivables(repo, loc),
		createReceivable: ucFinance.NewCreateReceivable(repo, auditor, loc),
		settle:           ucFinance.NewSettleReceivable(repo, auditor, loc),
		paymentLink:      ucFinance.NewCreatePaymentLink(repo, links),
		listPayables:     ucFinance.NewListPayables(repo, loc),
		createPayable:    ucFinance.NewCreatePayable(repo, auditor, loc),
		payPayable:       ucFinance.NewPayPayable(repo, auditor, loc),
		overview:         ucFinance.NewGetOverview(repo, loc),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReceivableRequest struct {
	ClientID    *uuid.UUID      `json:"client_id"`
	ClientName  string          `json:"client_name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
}

type SettleReceivableRequest struct {
	Method string `json:"method"`
}

type CreatePayableRequest struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
}

// ======================================================
// RECEIVABLES
// ======================================================

// ListReceivables aceita status=pending|paid|overdue, client_id, from e to.
func (h *FinanceHandler) ListReceivables(c *gin.Context) {
	filter := domain.ReceivableFilter{Status: c.Query("status")}

	clientID, ok := queryUUID(c, "client_id")
	if !ok {
		return
	}
	filter.ClientID = clientID

	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
			return
		}
		*dst = &d
	}

	list, err := h.listReceivables.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *FinanceHandler) CreateReceivable(c *gin.Context) {
	var req CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	rec, err := h.createReceivable.Execute(c.Request.Context(), ucFinance.CreateReceivableInput{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *FinanceHandler) SettleReceivable(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req SettleReceivableRequest
	// corpo opcional
	_ = c.ShouldBindJSON(&req)

	rec, err := h.settle.Execute(c.Request.Context(), id, req.Method)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *FinanceHandler) PaymentLink(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	url, err := h.paymentLink.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ======================================================
// PAYABLES
// ======================================================

func (h *FinanceHandler) ListPayables(c *gin.Context) {
	list, err := h.listPayables.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *FinanceHandler) CreatePayable(c *gin.Context) {
	var req CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	p, err := h.createPayable.Execute(c.Request.Context(), ucFinance.CreatePayableInput{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *FinanceHandler) PayPayable(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.payPayable.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// ======================================================
// OVERVIEW
// ======================================================

func (h *FinanceHandler) Overview(c *gin.Context) {
	ov, err := h.overview.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ov)
}
