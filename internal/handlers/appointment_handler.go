package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/payment"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	reschedule *ucAppointment.RescheduleAppointment
	confirm    *ucAppointment.ConfirmAttendance
	complete   *ucAppointment.CompleteAppointment
	cancel     *ucAppointment.CancelAppointment
	noShow     *ucAppointment.MarkNoShow
	receive    *ucAppointment.ReceivePayment
	byDate     *ucAppointment.ListAppointmentsByDate
	byMonth    *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	messenger *messaging.Messenger,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     ucAppointment.NewCreateAppointment(repo, auditor, messenger, loc),
		reschedule: ucAppointment.NewRescheduleAppointment(repo, auditor, messenger, loc),
		confirm:    ucAppointment.NewConfirmAttendance(repo, auditor),
		complete:   ucAppointment.NewCompleteAppointment(repo, auditor),
		cancel:     ucAppointment.NewCancelAppointment(repo, auditor),
		noShow:     ucAppointment.NewMarkNoShow(repo, auditor),
		receive:    ucAppointment.NewReceivePayment(repo, auditor, loc),
		byDate:     ucAppointment.NewListAppointmentsByDate(repo, loc),
		byMonth:    ucAppointment.NewListAppointmentsByMonth(repo, loc),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID       uuid.UUID `json:"client_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Notes          string    `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	ProfessionalID *uuid.UUID `json:"professional_id"`
}

type ReceivePaymentRequest struct {
	Method       string `json:"method"`
	ExpectedDate string `json:"expected_date"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		AppointmentID:  id,
		Date:           req.Date,
		Time:           req.Time,
		ProfessionalID: req.ProfessionalID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATUS
// ======================================================

type statusAction func(ctx *gin.Context, id uuid.UUID) (*models.Appointment, error)

func (h *AppointmentHandler) runStatus(c *gin.Context, action statusAction) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := action(c, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.runStatus(c, func(ctx *gin.Context, id uuid.UUID) (*models.Appointment, error) {
		return h.confirm.Execute(ctx.Request.Context(), id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.runStatus(c, func(ctx *gin.Context, id uuid.UUID) (*models.Appointment, error) {
		return h.complete.Execute(ctx.Request.Context(), id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.runStatus(c, func(ctx *gin.Context, id uuid.UUID) (*models.Appointment, error) {
		return h.cancel.Execute(ctx.Request.Context(), id)
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.runStatus(c, func(ctx *gin.Context, id uuid.UUID) (*models.Appointment, error) {
		return h.noShow.Execute(ctx.Request.Context(), id)
	})
}

// ======================================================
// PAYMENT
// ======================================================

func (h *AppointmentHandler) ReceivePayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ReceivePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	res, err := h.receive.Execute(c.Request.Context(), ucAppointment.ReceivePaymentInput{
		AppointmentID: id,
		Method:        req.Method,
		ExpectedDate:  req.ExpectedDate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// PaymentMethods devolve as opções com rótulo para o formulário.
func (h *AppointmentHandler) PaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, payment.Options())
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	list, err := h.byDate.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	list, err := h.byMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}
