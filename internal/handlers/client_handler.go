package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

type ClientHandler struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewClientHandler(db *gorm.DB, loc *time.Location) *ClientHandler {
	return &ClientHandler{db: db, loc: loc, now: time.Now}
}

// --------- Requests ---------

type ClientRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	BirthDate       string `json:"birth_date"`
	Notes           string `json:"notes"`
	AcceptsMessages *bool  `json:"accepts_messages"`
}

// ClientView acrescenta a inadimplência derivada das contas em aberto.
type ClientView struct {
	models.Client
	OverdueDays  int              `json:"overdue_days"`
	OverdueCount int              `json:"overdue_count"`
	Severity     finance.Severity `json:"severity"`
}

// apply valida e copia o request para o modelo.
func (r ClientRequest) apply(client *models.Client) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return httperr.ErrValidation("missing_field", "name")
	}

	phone := strings.TrimSpace(r.Phone)
	if phone != "" {
		if _, ok := messaging.NormalizePhone(phone); !ok {
			return httperr.ErrValidation("invalid_phone", "phone")
		}
	}

	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email != "" && !validators.IsEmail(email) {
		return httperr.ErrValidation("invalid_email", "email")
	}

	var birth *time.Time
	if r.BirthDate != "" {
		d, err := timezone.ParseDate(r.BirthDate, time.UTC)
		if err != nil {
			return httperr.ErrValidation("invalid_date_or_time", "birth_date")
		}
		birth = &d
	}

	client.Name = name
	client.Phone = phone
	client.Email = email
	client.BirthDate = birth
	client.Notes = r.Notes
	if r.AcceptsMessages != nil {
		client.AcceptsMessages = *r.AcceptsMessages
	}
	return nil
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	report, err := h.delinquency(c)
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	out := make([]ClientView, 0, len(clients))
	for _, cl := range clients {
		out = append(out, newClientView(cl, report))
	}

	c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) delinquency(c *gin.Context) (finance.OverdueReport, error) {
	var recs []models.Receivable
	if err := h.db.WithContext(c.Request.Context()).
		Where("status <> ? AND client_id IS NOT NULL", string(finance.StatusPaid)).
		Find(&recs).Error; err != nil {
		return finance.OverdueReport{}, err
	}
	return finance.ComputeOverdue(recs, h.now().In(h.loc)), nil
}

func newClientView(cl models.Client, report finance.OverdueReport) ClientView {
	v := ClientView{Client: cl}
	d := report.ForClient(cl.ID)
	v.OverdueDays = d.OverdueDays
	v.OverdueCount = d.OverdueCount
	v.Severity = d.Severity
	return v
}

// ======================================================
// GET
// ======================================================

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	client, ok := h.load(c, id)
	if !ok {
		return
	}

	report, err := h.delinquency(c)
	if err != nil {
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	c.JSON(http.StatusOK, newClientView(*client, report))
}

func (h *ClientHandler) load(c *gin.Context, id uuid.UUID) (*models.Client, bool) {
	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return nil, false
	}
	return &client, true
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	client := models.Client{AcceptsMessages: true}
	if err := req.apply(&client); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	client, ok := h.load(c, id)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if err := req.apply(client); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao salvar cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// Delete não apaga agendamentos: as listagens mostram "Cliente".
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// BIRTHDAYS
// ======================================================

func (h *ClientHandler) BirthdaysToday(c *gin.Context) {
	today := h.now().In(h.loc)

	var clients []models.Client
	if err := h.db.WithContext(c.Request.Context()).
		Where("birth_date IS NOT NULL").
		Where("EXTRACT(MONTH FROM birth_date) = ? AND EXTRACT(DAY FROM birth_date) = ?", int(today.Month()), today.Day()).
		Order("name ASC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	c.JSON(http.StatusOK, clients)
}
